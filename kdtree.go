package kde

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// NodeAttributes is the aggregate summary a Kdtree keeps at every node. It
// is always derivable from the points in the node's subtree (or from its
// two children); RefreshAttributes recomputes it bottom-up.
type NodeAttributes struct {
	Mass     float64 // sum of point.Attr.Mass over the subtree
	Lower    float64 // min point.Attr.Lower over the subtree
	Upper    float64 // max point.Attr.Upper over the subtree
	LowerABW float64 // min point.Attr.ABW over the subtree
	UpperABW float64 // max point.Attr.ABW over the subtree
}

// TreeNode is one node of a Kdtree, addressed by its index into the tree's
// Nodes slice rather than by pointer, since a median-split tree is not a
// complete binary tree and implicit 2i+1/2i+2 indexing would waste slots.
// Left and Right are -1 for a leaf.
type TreeNode struct {
	BBox  Rectangle
	Start int // inclusive
	End   int // exclusive
	Left  int
	Right int
	Attr  NodeAttributes
}

// IsLeaf reports whether n has no children.
func (n TreeNode) IsLeaf() bool { return n.Left < 0 }

// Kdtree is a recursive median-split kd-tree over a permuted copy of the
// points it was built from. Construction picks, at each level, the axis of
// greatest bounding-box extent and splits the index range at the median
// value along that axis. Indices into Points are stable
// once construction returns.
type Kdtree struct {
	Points  []DataPoint
	Nodes   []TreeNode
	Root    int
	Dim     int
	LeafMax int
}

// NewKdtree builds a Kdtree over a copy of points (the caller's slice is
// left untouched; points are reordered only within the tree's own copy).
// leafMax bounds how many points a leaf may hold. Returns an error if
// leafMax < 1, points is empty, or the points disagree on dimension.
func NewKdtree(points []DataPoint, leafMax int) (*Kdtree, error) {
	if leafMax < 1 {
		return nil, fmt.Errorf("kde: leafMax must be >= 1, got %d", leafMax)
	}
	if len(points) == 0 {
		return nil, errors.New("kde: cannot build a Kdtree from zero points")
	}
	dim := points[0].P.Dim()
	if err := checkDim(dim, points); err != nil {
		return nil, err
	}

	pts := make([]DataPoint, len(points))
	copy(pts, points)

	t := &Kdtree{Points: pts, Dim: dim, LeafMax: leafMax}
	t.Root = t.buildNode(0, len(pts))
	return t, nil
}

// Size returns the number of points in the tree.
func (t *Kdtree) Size() int { return len(t.Points) }

// Clone returns an independent copy of t: mutating one tree's point
// attributes or node aggregates never affects the other. Used to build a
// query tree "out of" the reference tree that preserves its indexing, as
// in self-evaluation of a density against its own reference points.
func (t *Kdtree) Clone() *Kdtree {
	pts := make([]DataPoint, len(t.Points))
	copy(pts, t.Points)
	nodes := make([]TreeNode, len(t.Nodes))
	copy(nodes, t.Nodes)
	return &Kdtree{Points: pts, Nodes: nodes, Root: t.Root, Dim: t.Dim, LeafMax: t.LeafMax}
}

// buildNode recursively builds the subtree over Points[start:end) and
// returns its node index.
func (t *Kdtree) buildNode(start, end int) int {
	bbox := Rectangle{edges: make([]Interval, t.Dim)}
	bbox.resizeFromPoints(t.Points[start:end])

	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{BBox: bbox, Start: start, End: end, Left: -1, Right: -1})

	if end-start <= t.LeafMax {
		t.refreshLeaf(idx)
		return idx
	}

	axis := maxExtentAxis(bbox)
	medianSplit(t.Points[start:end], axis)
	mid := start + (end-start)/2

	left := t.buildNode(start, mid)
	right := t.buildNode(mid, end)

	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right
	t.refreshInternal(idx)

	return idx
}

// RefreshAttributes recomputes NodeAttributes bottom-up starting at node
// idx, reading current point attributes at the leaves. Call it explicitly
// after mutating point attributes out from under the tree (AdaptDensity,
// UnadaptDensity) — nothing does this implicitly.
func (t *Kdtree) RefreshAttributes(idx int) {
	n := t.Nodes[idx]
	if n.IsLeaf() {
		t.refreshLeaf(idx)
		return
	}
	t.RefreshAttributes(n.Left)
	t.RefreshAttributes(n.Right)
	t.refreshInternal(idx)
}

func (t *Kdtree) refreshLeaf(idx int) {
	n := &t.Nodes[idx]

	var mass float64
	lower, upper := math.Inf(1), math.Inf(-1)
	lowerABW, upperABW := math.Inf(1), math.Inf(-1)

	for i := n.Start; i < n.End; i++ {
		a := t.Points[i].Attr
		mass += a.Mass
		lower = math.Min(lower, a.Lower)
		upper = math.Max(upper, a.Upper)
		lowerABW = math.Min(lowerABW, a.ABW)
		upperABW = math.Max(upperABW, a.ABW)
	}

	n.Attr = NodeAttributes{Mass: mass, Lower: lower, Upper: upper, LowerABW: lowerABW, UpperABW: upperABW}
}

func (t *Kdtree) refreshInternal(idx int) {
	n := &t.Nodes[idx]
	l := t.Nodes[n.Left].Attr
	r := t.Nodes[n.Right].Attr

	n.Attr = NodeAttributes{
		Mass:     l.Mass + r.Mass,
		Lower:    math.Min(l.Lower, r.Lower),
		Upper:    math.Max(l.Upper, r.Upper),
		LowerABW: math.Min(l.LowerABW, r.LowerABW),
		UpperABW: math.Max(l.UpperABW, r.UpperABW),
	}
}

// maxExtentAxis returns the dimension along which bbox is widest.
func maxExtentAxis(bbox Rectangle) int {
	best, bestExtent := 0, -1.0
	for d := 0; d < bbox.Dim(); d++ {
		e := bbox.Edge(d)
		if extent := e.Hi - e.Lo; extent > bestExtent {
			bestExtent, best = extent, d
		}
	}
	return best
}

// medianSplit reorders points in place so that the lower half (by index)
// holds the points with the smaller coordinates on axis, and the upper half
// the larger. Ties are broken by the partition being merely valid, not by
// any particular point landing on a particular side.
//
// A full sort is used rather than a linear-time selection: it is simpler,
// an accepted trade of asymptotic optimality for clarity at
// tree-construction time.
func medianSplit(points []DataPoint, axis int) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].P[axis] < points[j].P[axis]
	})
}
