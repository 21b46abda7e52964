package kde

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianKernel is the standard product Gaussian kernel, isotropic in all
// D dimensions: K_h(p,q) = (2*pi)^(-D/2) * h^(-D) * exp(-||p-q||^2 /
// (2*abw^2*h^2)). It is self-convolving: Gaussian(h) * Gaussian(h) =
// Gaussian(h*sqrt(2)).
type GaussianKernel struct {
	Dim int
}

var _ ConvolvableKernel = GaussianKernel{}

func (k GaussianKernel) Normalization(h float64) float64 {
	return math.Pow(2*math.Pi, -float64(k.Dim)/2) * math.Pow(h, -float64(k.Dim))
}

func (k GaussianKernel) UnnormalizedEval(p, q Point, h, abw float64) float64 {
	r2 := squaredDistance(p, q)
	return math.Exp(-r2 / (2 * abw * abw * h * h))
}

func (k GaussianKernel) Simulate(rng *rand.Rand, out []float64, h, abw float64) {
	d := distuv.Normal{Mu: 0, Sigma: abw * h, Src: rng}
	for i := range out {
		out[i] = d.Rand()
	}
}

// ConvolutionKernel returns Gaussian(h*sqrt(2)), the self-convolution of
// this kernel, as a kernel that can be evaluated directly at the original
// bandwidth h.
func (k GaussianKernel) ConvolutionKernel() (Kernel, error) {
	return gaussianConvolution{Dim: k.Dim}, nil
}

// gaussianConvolution is Gaussian(h*sqrt(2)), scaling the bandwidth it is
// called with internally so callers can pass h unchanged.
type gaussianConvolution struct {
	Dim int
}

var _ Kernel = gaussianConvolution{}

func (k gaussianConvolution) Normalization(h float64) float64 {
	return GaussianKernel{Dim: k.Dim}.Normalization(h * math.Sqrt2)
}

func (k gaussianConvolution) UnnormalizedEval(p, q Point, h, abw float64) float64 {
	return GaussianKernel{Dim: k.Dim}.UnnormalizedEval(p, q, h*math.Sqrt2, abw)
}

func (k gaussianConvolution) Simulate(rng *rand.Rand, out []float64, h, abw float64) {
	GaussianKernel{Dim: k.Dim}.Simulate(rng, out, h*math.Sqrt2, abw)
}
