package kde

import "testing"

func TestTightenBounds_EnforcesLowerLEUpper(t *testing.T) {
	// deliberately pathological input that would push lower above upper
	// without the clamp.
	upper, lower := tightenBounds(1, 0.1, 0.5, 0.5, 0.1, 1.0, 0.99)
	if lower > upper {
		t.Errorf("tightenBounds produced lower=%v > upper=%v", lower, upper)
	}
}

func TestCanApproximate_ExclusionPruning(t *testing.T) {
	// duNew effectively zero: should always be prunable regardless of
	// upper/lower separation.
	ok := canApproximate(1, 100, 1e-20, 0, 1, 0, 10, 0, 0.01, 1e-6)
	if !ok {
		t.Error("expected exclusion pruning to approve the prune")
	}
}

func TestCanApproximate_RejectsWideBounds(t *testing.T) {
	ok := canApproximate(1, 2, 0.9, 0.1, 1, 0, 10, 0, 1e-9, 1e-9)
	if ok {
		t.Error("expected a wide bound gap to reject the prune")
	}
}

func TestEstimateContributionsToPoint_BoundsBracketExactValue(t *testing.T) {
	node := TreeNode{
		BBox: NewRectangle(Point{0, 0}, Point{1, 1}),
		Attr: NodeAttributes{UpperABW: 1, LowerABW: 1},
	}
	k := GaussianKernel{Dim: 2}
	q := Point{2, 2}

	duNew, dlNew := estimateContributionsToPoint(node, q, k, 1)
	exact := k.UnnormalizedEval(q, Point{0.5, 0.5}, 1, 1)

	if dlNew > exact+1e-9 || exact > duNew+1e-9 {
		t.Errorf("bounds [%v, %v] do not bracket a representative value %v", dlNew, duNew, exact)
	}
}

func TestCloserIndexToPoint_PicksNearerBox(t *testing.T) {
	nodes := []TreeNode{
		{BBox: NewRectangle(Point{0}, Point{1})},
		{BBox: NewRectangle(Point{10}, Point{11})},
	}
	closer, further := closerIndexToPoint(nodes, 0, 1, Point{0.5})
	if closer != 0 || further != 1 {
		t.Errorf("closerIndexToPoint = (%d, %d), want (0, 1)", closer, further)
	}

	closer, further = closerIndexToPoint(nodes, 0, 1, Point{10.5})
	if closer != 1 || further != 0 {
		t.Errorf("closerIndexToPoint = (%d, %d), want (1, 0)", closer, further)
	}
}
