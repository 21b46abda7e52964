package kde

import "math/rand"

// Kernel is the capability a translation-invariant kernel must supply for
// use in single-tree and dual-tree evaluation.
// Implementations are stateless with respect to bandwidth: the bandwidth h
// and a point's local correction abw are always passed in explicitly by the
// evaluator, never stored on the kernel itself.
type Kernel interface {
	// Normalization returns the constant that makes UnnormalizedEval
	// integrate to 1 over all of R^D for the given bandwidth h.
	Normalization(h float64) float64

	// UnnormalizedEval returns the unnormalized kernel value between p and
	// q at bandwidth h with local bandwidth correction abw.
	UnnormalizedEval(p, q Point, h, abw float64) float64

	// Simulate draws a displacement vector from the kernel's distribution
	// at bandwidth h and local correction abw, writing one value per
	// dimension into out.
	Simulate(rng *rand.Rand, out []float64, h, abw float64)
}

// ConvolvableKernel is a Kernel that also knows the kernel obtained by
// convolving two instances of itself, needed for
// LSQConvolutionCrossValidate.
type ConvolvableKernel interface {
	Kernel

	// ConvolutionKernel returns the kernel K such that K_h * K_h = K_{h'}
	// for some effective bandwidth h' folded into the returned kernel's own
	// evaluation, or an error if this kernel has no closed-form
	// self-convolution.
	ConvolutionKernel() (Kernel, error)
}
