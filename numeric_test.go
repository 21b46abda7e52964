package kde

import (
	"math"
	"testing"
)

func TestAlmostEqual(t *testing.T) {
	if !almostEqual(1.0, 1.0, 0) {
		t.Error("identical values should always be almost-equal")
	}
	if !almostEqual(1.0, 1.0+1e-15, 1e-9) {
		t.Error("values within tolerance should be almost-equal")
	}
	if almostEqual(1.0, 2.0, 1e-9) {
		t.Error("values outside tolerance should not be almost-equal")
	}
	if !almostEqual(1e10, 1e10+1, 1e-9) {
		t.Error("relative tolerance should absorb small diffs at large magnitude")
	}
}

func TestLogSumExp_MatchesNaiveComputation(t *testing.T) {
	xs := []float64{0.1, 0.2, -0.3}
	got := logSumExp(xs)

	var naive float64
	for _, x := range xs {
		naive += math.Exp(x)
	}
	want := math.Log(naive)

	if !almostEqual(got, want, 1e-9) {
		t.Errorf("logSumExp = %v, want %v", got, want)
	}
}

func TestLogSumExp_EmptyIsNegativeInfinity(t *testing.T) {
	if got := logSumExp(nil); !math.IsInf(got, -1) {
		t.Errorf("logSumExp(nil) = %v, want -Inf", got)
	}
}
