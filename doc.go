// Package kde implements dual-tree kernel density estimation.
//
// Given N weighted reference points in D-dimensional Euclidean space and a
// translation-invariant kernel K_h, the package estimates
//
//	f(q) = sum_i weight_i * K_h(q, x_i)
//
// at one query point or a batch of query points, to an explicit pair of
// error tolerances (relErr, absErr). A direct O(N) pairwise sum is always
// available as a correctness baseline; the tree-based evaluators approach
// O(N log N) by propagating monotonic lower/upper bounds on f(q) through a
// kd-tree and pruning subtrees once the bounds already satisfy the
// tolerances.
//
// Basic usage:
//
//	cfg := kde.DefaultConfig()
//	cfg.Bandwidth = 0.5
//	density, err := kde.New(points, cfg)
//	estimate, err := density.Eval(kde.Point{0, 0}, 1e-6, 1e-8)
//
// For a batch of queries, sharing work across spatially close queries:
//
//	err := density.EvalBatch(queries, 1e-6, 1e-8, cfg.LeafSize)
//	// queries[i].Attr.Lower, queries[i].Attr.Upper now hold the per-query bound.
//
// # Adaptive bandwidth
//
// AdaptDensity applies Silverman's two-stage pilot procedure, rescaling
// each reference point's local bandwidth by a factor driven by a pilot
// density estimate. UnadaptDensity resets to the fixed-bandwidth state.
//
// # Cross-validation
//
// LikelihoodCrossValidate, LSQConvolutionCrossValidate, and (for D=2)
// LSQNumIntCrossValidate score the current kernel configuration against
// the reference set, so a caller can search over bandwidths.
package kde
