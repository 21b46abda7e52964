package kde

import (
	"errors"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Simulate draws one point from the density: first a reference point is
// chosen with probability proportional to its normalized weight (via the
// cumulative-weight table built at construction time), then a displacement
// is drawn from the kernel's distribution at that point's local bandwidth
// correction, and the two are added together. Grounded on
// KernelDensityImpl.h's simulate.
func (k *KernelDensity) Simulate(rng *rand.Rand) (DataPoint, error) {
	if len(k.cumWeights) == 0 {
		return DataPoint{}, errors.New("kde: Simulate: no reference points")
	}

	u := distuv.Uniform{Min: 0, Max: 1, Src: rng}.Rand()

	idx := sort.Search(len(k.cumWeights), func(i int) bool {
		return k.cumWeights[i] > u
	})
	if idx == len(k.cumWeights) {
		idx = len(k.cumWeights) - 1
	}

	refPt := k.dataTree.Points[idx]

	displacement := make([]float64, k.dataTree.Dim)
	k.cfg.Kernel.Simulate(rng, displacement, k.cfg.Bandwidth, refPt.Attr.ABW)

	out := make(Point, k.dataTree.Dim)
	for i := range out {
		out[i] = refPt.P[i] + displacement[i]
	}

	return NewDataPoint(out), nil
}
