package kde

import (
	"bytes"
	"strings"
	"testing"
)

func TestReportPrecisionLoss_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	reportPrecisionLoss(&buf, "bound gap %g exceeds tolerance", 0.5)

	if !strings.Contains(buf.String(), "bound gap 0.5") {
		t.Errorf("reportPrecisionLoss wrote %q, missing formatted message", buf.String())
	}
}

func TestReportPrecisionLoss_NilWriterIsNoop(t *testing.T) {
	reportPrecisionLoss(nil, "should not panic")
}
