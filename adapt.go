package kde

import (
	"fmt"
	"math"
)

// UnadaptDensity resets every reference point's local bandwidth correction
// to 1 and its mass back to its plain weight, undoing a prior AdaptDensity.
// Grounded on KernelDensityImpl.h's unadapt_density.
func (k *KernelDensity) UnadaptDensity() {
	for i := range k.dataTree.Points {
		a := &k.dataTree.Points[i].Attr
		a.ABW = 1
		a.Mass = a.Weight
	}
	k.dataTree.RefreshAttributes(k.dataTree.Root)
}

// AdaptDensity repurposes k into an adaptive-bandwidth estimator following
// Silverman's two-stage pilot procedure (Density Estimation for Statistics
// and Data Analysis, p.101): a fixed-bandwidth pilot density is evaluated
// at every reference point, their geometric mean g is formed, and each
// point's local bandwidth correction is set to (pilot_i/g)^(-alpha).
// alpha must be in [0,1]; alpha=0 leaves k non-adaptive. Grounded on
// KernelDensityImpl.h's adapt_density.
func (k *KernelDensity) AdaptDensity(alpha, relErr, absErr float64) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("kde: AdaptDensity: alpha must be in [0, 1], got %g", alpha)
	}

	k.UnadaptDensity()
	if alpha == 0 {
		return nil
	}

	dim := k.dataTree.Dim
	pilotTree := k.selfEvalBatch(relErr, absErr)

	localBW := make([]float64, len(pilotTree.Points))
	var g float64
	for i, p := range pilotTree.Points {
		localBW[i] = p.Estimate()
		g += k.dataTree.Points[i].Attr.Weight * math.Log(localBW[i])
	}
	g = math.Exp(g)

	for i := range localBW {
		localBW[i] = math.Pow(localBW[i]/g, -alpha)
	}

	for i := range k.dataTree.Points {
		a := &k.dataTree.Points[i].Attr
		a.ABW = localBW[i]
		a.Mass = a.Weight * math.Pow(localBW[i], -float64(dim))
	}
	k.dataTree.RefreshAttributes(k.dataTree.Root)

	return nil
}
