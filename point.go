package kde

import "fmt"

// Point is a coordinate tuple in D-dimensional Euclidean space. Every Point
// that interacts with a given KernelDensity, Kdtree, or Rectangle must carry
// the same length; that length is fixed at construction time and checked
// there rather than encoded in the type system.
type Point []float64

// Dim returns the dimensionality of p.
func (p Point) Dim() int { return len(p) }

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// lexLess reports whether p sorts before q in lexicographic order. Equality
// on floats is compared with == intentionally: callers only need a valid
// total order, not a tolerant one.
func lexLess(p, q Point) bool {
	i := 0
	for i < len(p) && p[i] == q[i] {
		i++
	}
	return i != len(p) && p[i] < q[i]
}

// squaredDistance returns the squared Euclidean distance between p and q.
func squaredDistance(p, q Point) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return sum
}

// DataPointAttributes bundles the per-reference-point bookkeeping the
// tree-based evaluators mutate during construction, adaptation, and
// traversal.
type DataPointAttributes struct {
	Weight float64 // normalized so that summing over all reference points gives 1
	ABW    float64 // local bandwidth correction; 1.0 in the non-adaptive state
	Mass   float64 // Weight * ABW^(-D)

	Lower float64 // current lower bound on f at this point
	Upper float64 // current upper bound on f at this point

	LowerABW float64 // node-level aggregate only: min ABW over the subtree
	UpperABW float64 // node-level aggregate only: max ABW over the subtree
}

// DataPoint pairs a geometric Point with its DataPointAttributes. It is the
// unit of storage in both the reference tree and any query tree.
type DataPoint struct {
	P    Point
	Attr DataPointAttributes
}

// Estimate returns the point-estimate (Lower+Upper)/2 currently held in
// Attr, valid after a call to EvalBatch or DirectEvalBatch, which write
// Lower/Upper back into the DataPoint itself (Eval and DirectEval return
// a scalar directly and leave Attr untouched).
func (d DataPoint) Estimate() float64 {
	return d.Attr.Lower + (d.Attr.Upper-d.Attr.Lower)/2
}

// NewDataPoint builds a DataPoint with weight 1 and no local bandwidth
// correction (ABW=1), the defaults assumed for freshly-supplied reference
// or query points.
func NewDataPoint(p Point) DataPoint {
	return DataPoint{P: p, Attr: DataPointAttributes{Weight: 1, ABW: 1}}
}

func checkDim(d int, points []DataPoint) error {
	for i, p := range points {
		if len(p.P) != d {
			return fmt.Errorf("kde: point %d has dimension %d, want %d", i, len(p.P), d)
		}
	}
	return nil
}
