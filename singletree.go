package kde

// singleTreeBase brute-forces the contribution of every point in dnode
// directly against q, then removes the provisional bound contribution
// (du, dl) that had been applied for the whole node. Grounded on
// KernelDensityImpl.h's single_tree_base.
//
// Precondition: lower <= upper, dl <= du. Postcondition: lower <= upper.
func (dt *Kdtree) singleTreeBase(nodeIdx int, q Point, kernel Kernel, h, du, dl, upper, lower float64) (float64, float64) {
	node := dt.Nodes[nodeIdx]
	for i := node.Start; i < node.End; i++ {
		p := dt.Points[i]
		delta := kernel.UnnormalizedEval(q, p.P, h, p.Attr.ABW) * p.Attr.Mass
		upper += delta
		lower += delta
	}
	upper -= node.Attr.Mass * du
	lower -= node.Attr.Mass * dl
	if lower > upper {
		upper = lower
	}
	return upper, lower
}

// singleTree descends the reference tree rooted at nodeIdx, tightening
// (upper, lower) bounds on the kde value at q until they already satisfy
// (relErr, absErr) or a leaf is reached and brute-forced. Grounded on
// KernelDensityImpl.h's single_tree.
func (dt *Kdtree) singleTree(nodeIdx int, q Point, kernel Kernel, h float64, upper, lower, du, dl, relErr, absErr float64) (float64, float64) {
	node := dt.Nodes[nodeIdx]

	duNew, dlNew := estimateContributionsToPoint(node, q, kernel, h)

	if canApproximate(node.Attr.Mass, dt.Size(), duNew, dlNew, du, dl, upper, lower, relErr, absErr) {
		upper, lower = tightenBounds(node.Attr.Mass, duNew, dlNew, du, dl, upper, lower)
		return upper, lower
	}

	if node.IsLeaf() {
		return dt.singleTreeBase(nodeIdx, q, kernel, h, du, dl, upper, lower)
	}

	upper, lower = tightenBounds(node.Attr.Mass, duNew, dlNew, du, dl, upper, lower)

	closer, further := closerIndexToPoint(dt.Nodes, node.Left, node.Right, q)
	upper, lower = dt.singleTree(closer, q, kernel, h, upper, lower, duNew, dlNew, relErr, absErr)
	upper, lower = dt.singleTree(further, q, kernel, h, upper, lower, duNew, dlNew, relErr, absErr)

	return upper, lower
}
