package kde

import "math"

// tightenBounds folds in the new per-point contribution bounds (duNew, dlNew)
// for a node of total mass, replacing the previously-applied (du, dl), and
// returns the updated (upper, lower) pair. Roundoff in the subtraction can
// occasionally push lower above upper; the output invariant lower <= upper
// is enforced explicitly rather than relied upon algebraically. Grounded on
// KernelDensityImpl.h's tighten_bounds.
func tightenBounds(mass, duNew, dlNew, du, dl, upper, lower float64) (float64, float64) {
	lower += mass * (dlNew - dl)
	upper += mass * (duNew - du)
	if lower > upper {
		upper = lower
	}
	return upper, lower
}

// canApproximate decides whether the bound update (duNew, dlNew) on a node
// of the given mass, applied against a reference set of size n, already
// satisfies the (relErr, absErr) tolerances without descending further.
// Combines Deng & Moore's exclusion/tightness pruning with Gray & Moore's
// relative-error pruning. Grounded on KernelDensityImpl.h's can_approximate.
func canApproximate(mass float64, n int, duNew, dlNew, du, dl, upper, lower, relErr, absErr float64) bool {
	absTol := 2 * absErr / float64(n)

	if math.Abs(duNew) <= absTol {
		return true
	}
	if math.Abs(duNew-dlNew) <= absTol {
		return true
	}

	upper, lower = tightenBounds(mass, duNew, dlNew, du, dl, upper, lower)

	if math.Abs(upper-lower) <= absErr || math.Abs(upper-lower) <= math.Abs(lower)*relErr {
		return true
	}
	return false
}

// estimateContributionsToPoint bounds the unnormalized kernel contribution
// of every point in dnode towards query point q: duNew is an upper bound,
// dlNew a lower bound, each computed by evaluating the kernel at the
// nearest/farthest possible per-axis distance and the node's most/least
// diffuse local bandwidth. Grounded on estimate_contributions.
func estimateContributionsToPoint(dnode TreeNode, q Point, kernel Kernel, h float64) (duNew, dlNew float64) {
	dim := q.Dim()
	origin := make(Point, dim)
	nearest := make(Point, dim)
	farthest := make(Point, dim)
	for i := 0; i < dim; i++ {
		nearest[i] = dnode.BBox.MinDistAxis(i, q)
		farthest[i] = dnode.BBox.MaxDistAxis(i, q)
	}
	duNew = kernel.UnnormalizedEval(nearest, origin, h, dnode.Attr.UpperABW)
	dlNew = kernel.UnnormalizedEval(farthest, origin, h, dnode.Attr.LowerABW)
	return duNew, dlNew
}

// estimateContributionsToRect is estimateContributionsToPoint's dual-tree
// counterpart: the target is a query node's bounding box rather than a
// single point.
func estimateContributionsToRect(dnode TreeNode, qbox Rectangle, kernel Kernel, h float64) (duNew, dlNew float64) {
	dim := qbox.Dim()
	origin := make(Point, dim)
	nearest := make(Point, dim)
	farthest := make(Point, dim)
	for i := 0; i < dim; i++ {
		nearest[i] = dnode.BBox.MinDistAxisRect(i, qbox)
		farthest[i] = dnode.BBox.MaxDistAxisRect(i, qbox)
	}
	duNew = kernel.UnnormalizedEval(nearest, origin, h, dnode.Attr.UpperABW)
	dlNew = kernel.UnnormalizedEval(farthest, origin, h, dnode.Attr.LowerABW)
	return duNew, dlNew
}

// closerIndexToPoint returns (a, b) reordered so the first result is the
// node bounding box closer to q, used to visit the more-constraining
// halfspace first during single-tree descent. Grounded on
// apply_closer_heuristic.
func closerIndexToPoint(nodes []TreeNode, a, b int, q Point) (closer, further int) {
	if nodes[a].BBox.MinDist(q) > nodes[b].BBox.MinDist(q) {
		return b, a
	}
	return a, b
}

// closerIndexToRect is closerIndexToPoint's dual-tree counterpart.
func closerIndexToRect(nodes []TreeNode, a, b int, qbox Rectangle) (closer, further int) {
	if nodes[a].BBox.MinDistRect(qbox) > nodes[b].BBox.MinDistRect(qbox) {
		return b, a
	}
	return a, b
}
