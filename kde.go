package kde

import (
	"errors"
	"fmt"
	"math"
)

var errNoPoints = errors.New("kde: New requires at least one point")

// KernelDensity is a fitted kernel density estimator over a fixed set of
// reference points. It owns a reference kd-tree (DataTree) and the config
// that shaped it; queries against it never mutate the reference points
// (evaluations write bounds into query trees or clones of the reference
// tree), and only AdaptDensity/UnadaptDensity rewrite their ABW and Mass.
// Grounded on KernelDensityImpl.h's KernelDensity class.
type KernelDensity struct {
	dataTree   *Kdtree
	cumWeights []float64
	cfg        Config
}

// New fits a KernelDensity over points: it normalizes point weights to sum
// to 1, derives each point's mass from its weight and local bandwidth
// correction, and builds the reference kd-tree. cfg.Bandwidth must be set;
// a zero Kernel/Workers/Diagnostics is filled in by applyDefaults (a
// GaussianKernel of the data's dimension, runtime.NumCPU(), os.Stderr).
func New(points []DataPoint, cfg Config) (*KernelDensity, error) {
	if len(points) == 0 {
		return nil, errNoPoints
	}
	dim := points[0].P.Dim()
	if err := checkDim(dim, points); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg, dim); err != nil {
		return nil, err
	}
	cfg = applyDefaults(cfg, dim)

	refPoints := make([]DataPoint, len(points))
	copy(refPoints, points)
	normalizeWeights(refPoints)
	for i := range refPoints {
		a := &refPoints[i].Attr
		a.Mass = a.Weight * math.Pow(a.ABW, -float64(dim))
	}

	dataTree, err := NewKdtree(refPoints, cfg.LeafSize)
	if err != nil {
		return nil, err
	}

	return &KernelDensity{
		dataTree:   dataTree,
		cumWeights: initializeCumWeights(dataTree),
		cfg:        cfg,
	}, nil
}

// normalizeWeights rescales pts' weights in place so they sum to 1.
// Grounded on KernelDensityImpl.h's normalize_weights.
func normalizeWeights(pts []DataPoint) {
	var total float64
	for _, p := range pts {
		total += p.Attr.Weight
	}
	for i := range pts {
		pts[i].Attr.Weight /= total
	}
}

// initializeCumWeights returns the running sum of reference point weights
// in tree order, clamping the final entry to exactly 1 to absorb roundoff.
// Used to draw a weighted random reference point during Simulate.
// Grounded on KernelDensityImpl.h's initialize_cum_weights.
func initializeCumWeights(dt *Kdtree) []float64 {
	cum := make([]float64, dt.Size())
	var sum float64
	for i, p := range dt.Points {
		sum += p.Attr.Weight
		cum[i] = sum
	}
	if len(cum) > 0 {
		cum[len(cum)-1] = 1
	}
	return cum
}

// Kernel returns the kernel currently in use.
func (k *KernelDensity) Kernel() Kernel { return k.cfg.Kernel }

// SetKernel replaces the kernel in use. The bandwidth is unchanged: it
// stays the cfg.Bandwidth the density was built with.
func (k *KernelDensity) SetKernel(kernel Kernel) { k.cfg.Kernel = kernel }

// Points returns the current reference points, in tree order. Evaluations
// do not write to them, so their Lower/Upper fields are not evaluation
// results.
func (k *KernelDensity) Points() []DataPoint { return k.dataTree.Points }

// DataTree exposes the underlying reference kd-tree.
func (k *KernelDensity) DataTree() *Kdtree { return k.dataTree }

// Eval estimates the density at q to within (relErr, absErr), via
// single-tree bound propagation. Grounded on KernelDensityImpl.h's eval(p,
// kernel, rel_err, abs_err).
func (k *KernelDensity) Eval(q Point, relErr, absErr float64) (float64, error) {
	if q.Dim() != k.dataTree.Dim {
		return 0, fmt.Errorf("kde: query has dimension %d, want %d", q.Dim(), k.dataTree.Dim)
	}

	norm := k.cfg.Kernel.Normalization(k.cfg.Bandwidth)

	upper := k.dataTree.Nodes[k.dataTree.Root].Attr.Mass
	lower := 0.0

	upper, lower = k.dataTree.singleTree(k.dataTree.Root, q, k.cfg.Kernel, k.cfg.Bandwidth, upper, lower, 1.0, 0.0, relErr, absErr/norm)

	result := norm * (lower + (upper-lower)/2)

	if absF(upper-lower) > absErr/norm {
		reportPrecisionLoss(k.cfg.Diagnostics, "query %v: upper=%g lower=%g gap=%g rel_gap=%g exceeds abs_err=%g", q, norm*upper, norm*lower, norm*(upper-lower), (upper-lower)/absF(lower), absErr)
	}

	return result, nil
}

// EvalBatch estimates the density at every query in queries to within
// (relErr, absErr), sharing work across spatially close queries via a
// dual-tree traversal. leafMax bounds the query tree's leaf size. Results
// are written back into queries[i].Attr.Lower/Upper (and their midpoint is
// available via DataPoint.Estimate). Grounded on KernelDensityImpl.h's
// eval(query_tree, kernel, rel_err, abs_err).
func (k *KernelDensity) EvalBatch(queries []DataPoint, relErr, absErr float64, leafMax int) error {
	if err := checkDim(k.dataTree.Dim, queries); err != nil {
		return err
	}

	// The query tree permutes its own copy of the queries. Weight is never
	// read for query points, so it carries each query's index in the
	// caller's slice and the bounds are written back in the caller's order.
	tagged := make([]DataPoint, len(queries))
	copy(tagged, queries)
	for i := range tagged {
		tagged[i].Attr.Weight = float64(i)
	}

	queryTree, err := NewKdtree(tagged, leafMax)
	if err != nil {
		return err
	}

	k.evalBatchOnTree(queryTree, relErr, absErr)

	for _, p := range queryTree.Points {
		i := int(p.Attr.Weight)
		queries[i].Attr.Lower, queries[i].Attr.Upper = p.Attr.Lower, p.Attr.Upper
	}
	return nil
}

// evalBatchOnTree runs the dual-tree traversal of EvalBatch against an
// already-built queryTree, writing results into queryTree.Points in place.
func (k *KernelDensity) evalBatchOnTree(queryTree *Kdtree, relErr, absErr float64) {
	norm := k.cfg.Kernel.Normalization(k.cfg.Bandwidth)
	totalMass := k.dataTree.Nodes[k.dataTree.Root].Attr.Mass

	for i := range queryTree.Points {
		queryTree.Points[i].Attr.Lower = 0
		queryTree.Points[i].Attr.Upper = totalMass
	}
	queryTree.RefreshAttributes(queryTree.Root)

	dualTree(k.dataTree, k.dataTree.Root, queryTree, queryTree.Root, k.cfg.Kernel, k.cfg.Bandwidth, 1.0, 0.0, relErr, absErr/norm)

	for i := range queryTree.Points {
		p := &queryTree.Points[i]
		p.Attr.Lower *= norm
		p.Attr.Upper *= norm
		if absF(p.Attr.Upper-p.Attr.Lower) > absErr {
			gap := p.Attr.Upper - p.Attr.Lower
			reportPrecisionLoss(k.cfg.Diagnostics, "query %v: upper=%g lower=%g gap=%g rel_gap=%g exceeds abs_err=%g", p.P, p.Attr.Upper, p.Attr.Lower, gap, gap/absF(p.Attr.Lower), absErr)
		}
	}
}

// selfEvalBatch dual-tree-evaluates k against its own reference points,
// returning a clone of the reference tree with each point's Lower/Upper
// set to its self-evaluation bound. Builds the query tree via Clone
// rather than by rebuilding from a copied point slice: a fresh build can
// break ties on the split axis differently than the reference tree did,
// which would silently misalign index i between the clone and
// k.dataTree.Points for reference sets with duplicate or collinear
// coordinates. Clone preserves the reference tree's indexing exactly.
func (k *KernelDensity) selfEvalBatch(relErr, absErr float64) *Kdtree {
	queryTree := k.dataTree.Clone()
	k.evalBatchOnTree(queryTree, relErr, absErr)
	return queryTree
}

// DirectEval computes the density at q by brute-force summation over every
// reference point, with no pruning and no error tolerance. It is the
// correctness baseline Eval and EvalBatch are checked against. Grounded on
// KernelDensityImpl.h's direct_eval(p, kernel).
func (k *KernelDensity) DirectEval(q Point) (float64, error) {
	if q.Dim() != k.dataTree.Dim {
		return 0, fmt.Errorf("kde: query has dimension %d, want %d", q.Dim(), k.dataTree.Dim)
	}

	var total float64
	for _, d := range k.dataTree.Points {
		total += d.Attr.Mass * k.cfg.Kernel.UnnormalizedEval(q, d.P, k.cfg.Bandwidth, d.Attr.ABW)
	}
	return total * k.cfg.Kernel.Normalization(k.cfg.Bandwidth), nil
}

// LogDirectEval computes log(DirectEval(q)) by summing the
// per-reference-point terms log(mass) + log(kernel value) via logSumExp
// rather than summing in linear space and taking one final log. Each
// kernel value is still computed in linear space before its log is taken,
// so a contribution that underflows to 0 adds nothing to the sum, and the
// result is -Inf when every contribution underflows.
func (k *KernelDensity) LogDirectEval(q Point) (float64, error) {
	if q.Dim() != k.dataTree.Dim {
		return 0, fmt.Errorf("kde: query has dimension %d, want %d", q.Dim(), k.dataTree.Dim)
	}

	terms := make([]float64, len(k.dataTree.Points))
	for i, d := range k.dataTree.Points {
		terms[i] = math.Log(d.Attr.Mass) + math.Log(k.cfg.Kernel.UnnormalizedEval(q, d.P, k.cfg.Bandwidth, d.Attr.ABW))
	}
	return logSumExp(terms) + math.Log(k.cfg.Kernel.Normalization(k.cfg.Bandwidth)), nil
}

// DirectEvalBatch is DirectEval applied to every query, parallelized across
// cfg.Workers goroutines over disjoint index ranges. Results are bitwise
// identical to calling DirectEval sequentially on each query.
func (k *KernelDensity) DirectEvalBatch(queries []DataPoint) error {
	if err := checkDim(k.dataTree.Dim, queries); err != nil {
		return err
	}
	directEvalParallel(k, queries, k.cfg.Workers)
	return nil
}
