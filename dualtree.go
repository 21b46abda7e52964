package kde

import "math"

// dualTreeBase brute-forces every (reference point, query point) pair
// spanned by dNode and qNode, updates each query point's (Lower, Upper)
// bound in place, and returns qNode's own bound as the min/max over its
// queries. Grounded on KernelDensityImpl.h's dual_tree_base.
func dualTreeBase(refTree *Kdtree, dNodeIdx int, queryTree *Kdtree, qNodeIdx int, kernel Kernel, h, du, dl float64) (float64, float64) {
	qNode := queryTree.Nodes[qNodeIdx]

	minQ, maxQ := math.Inf(1), math.Inf(-1)

	for i := qNode.Start; i < qNode.End; i++ {
		q := &queryTree.Points[i]
		upper, lower := refTree.singleTreeBase(dNodeIdx, q.P, kernel, h, du, dl, q.Attr.Upper, q.Attr.Lower)
		q.Attr.Upper, q.Attr.Lower = upper, lower

		minQ = math.Min(minQ, lower)
		maxQ = math.Max(maxQ, upper)
	}

	return maxQ, minQ
}

// dualTree descends a reference-tree node (dNodeIdx, in refTree) and a
// query-tree node (qNodeIdx, in queryTree) together, tightening bounds on
// every query point reachable from qNode until the (relErr, absErr)
// tolerances are already met or both nodes bottom out in a base case.
// Grounded on KernelDensityImpl.h's dual_tree.
func dualTree(refTree *Kdtree, dNodeIdx int, queryTree *Kdtree, qNodeIdx int, kernel Kernel, h, du, dl, relErr, absErr float64) {
	dNode := refTree.Nodes[dNodeIdx]
	qNode := &queryTree.Nodes[qNodeIdx]

	duNew, dlNew := estimateContributionsToRect(dNode, qNode.BBox, kernel, h)

	if canApproximate(dNode.Attr.Mass, refTree.Size(), duNew, dlNew, du, dl, qNode.Attr.Upper, qNode.Attr.Lower, relErr, absErr) {
		upper, lower := tightenBounds(dNode.Attr.Mass, duNew, dlNew, du, dl, qNode.Attr.Upper, qNode.Attr.Lower)
		qNode.Attr.Upper, qNode.Attr.Lower = upper, lower

		for i := qNode.Start; i < qNode.End; i++ {
			q := &queryTree.Points[i]
			upper, lower := tightenBounds(dNode.Attr.Mass, duNew, dlNew, 1.0, 0.0, q.Attr.Upper, q.Attr.Lower)
			q.Attr.Upper, q.Attr.Lower = upper, lower
		}
		return
	}

	if qNode.IsLeaf() && dNode.IsLeaf() {
		// Per-query bounds are never tightened at intermediate levels, so they
		// still count this reference node's mass at the baseline (1.0, 0.0)
		// proportion they were initialized with: the base case must add the
		// exact contribution with that proportion, not the inherited (du, dl).
		upper, lower := dualTreeBase(refTree, dNodeIdx, queryTree, qNodeIdx, kernel, h, 1.0, 0.0)
		qNode.Attr.Upper, qNode.Attr.Lower = upper, lower
		return
	}

	if qNode.IsLeaf() {
		upper, lower := tightenBounds(dNode.Attr.Mass, duNew, dlNew, du, dl, qNode.Attr.Upper, qNode.Attr.Lower)
		qNode.Attr.Upper, qNode.Attr.Lower = upper, lower

		closer, further := closerIndexToRect(refTree.Nodes, dNode.Left, dNode.Right, qNode.BBox)
		dualTree(refTree, closer, queryTree, qNodeIdx, kernel, h, duNew, dlNew, relErr, absErr)
		dualTree(refTree, further, queryTree, qNodeIdx, kernel, h, duNew, dlNew, relErr, absErr)
		return
	}

	qLeft, qRight := qNode.Left, qNode.Right

	leftUpper, leftLower := tightenBounds(dNode.Attr.Mass, duNew, dlNew, du, dl, queryTree.Nodes[qLeft].Attr.Upper, queryTree.Nodes[qLeft].Attr.Lower)
	queryTree.Nodes[qLeft].Attr.Upper, queryTree.Nodes[qLeft].Attr.Lower = leftUpper, leftLower

	rightUpper, rightLower := tightenBounds(dNode.Attr.Mass, duNew, dlNew, du, dl, queryTree.Nodes[qRight].Attr.Upper, queryTree.Nodes[qRight].Attr.Lower)
	queryTree.Nodes[qRight].Attr.Upper, queryTree.Nodes[qRight].Attr.Lower = rightUpper, rightLower

	if dNode.IsLeaf() {
		dualTree(refTree, dNodeIdx, queryTree, qLeft, kernel, h, duNew, dlNew, relErr, absErr)
		dualTree(refTree, dNodeIdx, queryTree, qRight, kernel, h, duNew, dlNew, relErr, absErr)
	} else {
		closerLeft, furtherLeft := closerIndexToRect(refTree.Nodes, dNode.Left, dNode.Right, queryTree.Nodes[qLeft].BBox)
		dualTree(refTree, closerLeft, queryTree, qLeft, kernel, h, duNew, dlNew, relErr, absErr)
		dualTree(refTree, furtherLeft, queryTree, qLeft, kernel, h, duNew, dlNew, relErr, absErr)

		closerRight, furtherRight := closerIndexToRect(refTree.Nodes, dNode.Left, dNode.Right, queryTree.Nodes[qRight].BBox)
		dualTree(refTree, closerRight, queryTree, qRight, kernel, h, duNew, dlNew, relErr, absErr)
		dualTree(refTree, furtherRight, queryTree, qRight, kernel, h, duNew, dlNew, relErr, absErr)
	}

	queryTree.Nodes[qNodeIdx].Attr.Lower = math.Min(queryTree.Nodes[qLeft].Attr.Lower, queryTree.Nodes[qRight].Attr.Lower)
	queryTree.Nodes[qNodeIdx].Attr.Upper = math.Max(queryTree.Nodes[qLeft].Attr.Upper, queryTree.Nodes[qRight].Attr.Upper)
}
