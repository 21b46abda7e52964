package kde

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// EpanechnikovKernel is the radially symmetric Epanechnikov kernel:
// K_h(p,q) = max(0, 1 - (||p-q|| / (abw*h))^2). Normalization(h) makes it
// integrate to 1 over the ball of radius h at abw = 1. It has no closed-form
// self-convolution, so ConvolutionKernel always errors.
type EpanechnikovKernel struct {
	Dim int
}

var _ Kernel = EpanechnikovKernel{}

// unitBallVolume returns the volume of the unit ball in Dim dimensions.
func (k EpanechnikovKernel) unitBallVolume() float64 {
	d := float64(k.Dim)
	return math.Pow(math.Pi, d/2) / math.Gamma(d/2+1)
}

func (k EpanechnikovKernel) Normalization(h float64) float64 {
	d := float64(k.Dim)
	cd := k.unitBallVolume()
	// the D+2 factor comes from integrating (1-||u||^2) over the unit ball.
	return (d + 2) / (2 * cd * math.Pow(h, d))
}

func (k EpanechnikovKernel) UnnormalizedEval(p, q Point, h, abw float64) float64 {
	r := math.Sqrt(squaredDistance(p, q))
	u := r / (abw * h)
	if u >= 1 {
		return 0
	}
	return 1 - u*u
}

// Simulate draws a displacement by rejection sampling: pick a uniform point
// in the enclosing cube of radius abw*h and accept it with probability
// equal to the kernel's unnormalized value there (which peaks at 1, so no
// further rescaling is needed).
func (k EpanechnikovKernel) Simulate(rng *rand.Rand, out []float64, h, abw float64) {
	radius := abw * h
	coord := distuv.Uniform{Min: -radius, Max: radius, Src: rng}
	accept := distuv.Uniform{Min: 0, Max: 1, Src: rng}
	origin := make(Point, k.Dim)
	candidate := make(Point, k.Dim)
	for {
		for i := range candidate {
			candidate[i] = coord.Rand()
		}
		if accept.Rand() < k.UnnormalizedEval(origin, candidate, h, abw) {
			copy(out, candidate)
			return
		}
	}
}

func (k EpanechnikovKernel) ConvolutionKernel() (Kernel, error) {
	return nil, errors.New("kde: EpanechnikovKernel has no closed-form self-convolution")
}
