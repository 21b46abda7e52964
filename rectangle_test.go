package kde

import "testing"

func TestRectangle_NewRectangle_OrdersEdges(t *testing.T) {
	r := NewRectangle(Point{3, -1}, Point{1, 2})
	if got := r.Edge(0); got.Lo != 1 || got.Hi != 3 {
		t.Errorf("Edge(0) = %v, want [1, 3]", got)
	}
	if got := r.Edge(1); got.Lo != -1 || got.Hi != 2 {
		t.Errorf("Edge(1) = %v, want [-1, 2]", got)
	}
}

func TestRectangle_Contains(t *testing.T) {
	r := NewRectangle(Point{0, 0}, Point{2, 2})
	if !r.Contains(Point{1, 1}) {
		t.Error("Contains({1,1}) = false, want true")
	}
	if r.Contains(Point{3, 1}) {
		t.Error("Contains({3,1}) = true, want false")
	}
}

func TestRectangle_MinMaxDist_Point(t *testing.T) {
	r := NewRectangle(Point{0, 0}, Point{2, 2})

	if got := r.MinDist(Point{1, 1}); got != 0 {
		t.Errorf("MinDist(inside) = %v, want 0", got)
	}

	got := r.MinDist(Point{3, 0})
	if !almostEqual(got, 1, 1e-12) {
		t.Errorf("MinDist({3,0}) = %v, want 1", got)
	}

	if got := r.MaxDist(Point{1, 1}); got <= 0 {
		t.Errorf("MaxDist(inside) = %v, want > 0", got)
	}
}

func TestRectangle_MinDist_NeverExceedsMaxDist(t *testing.T) {
	r := NewRectangle(Point{-1, -1}, Point{1, 1})
	queries := []Point{{0, 0}, {5, 5}, {-5, 5}, {2, -2}}
	for _, q := range queries {
		if r.MinDist(q) > r.MaxDist(q) {
			t.Errorf("q=%v: MinDist %v > MaxDist %v", q, r.MinDist(q), r.MaxDist(q))
		}
	}
}

func TestRectangle_MinDistRect_Overlapping(t *testing.T) {
	a := NewRectangle(Point{0, 0}, Point{2, 2})
	b := NewRectangle(Point{1, 1}, Point{3, 3})
	if got := a.MinDistRect(b); got != 0 {
		t.Errorf("MinDistRect(overlapping) = %v, want 0", got)
	}
}

func TestRectangle_MinDistRect_Disjoint(t *testing.T) {
	a := NewRectangle(Point{0, 0}, Point{1, 1})
	b := NewRectangle(Point{4, 0}, Point{5, 1})
	want := 3.0
	if got := a.MinDistRect(b); !almostEqual(got, want, 1e-12) {
		t.Errorf("MinDistRect(disjoint) = %v, want %v", got, want)
	}
}

func TestRectangle_Halfspaces_Cover(t *testing.T) {
	r := NewRectangle(Point{0, 0}, Point{4, 4})
	lower := r.LowerHalfspace(0, 2)
	upper := r.UpperHalfspace(0, 2)

	if lower.Edge(0).Hi != 2 || upper.Edge(0).Lo != 2 {
		t.Errorf("halfspace split boundary mismatch: lower=%v upper=%v", lower, upper)
	}
	// the other axis is untouched
	if lower.Edge(1) != r.Edge(1) || upper.Edge(1) != r.Edge(1) {
		t.Error("halfspace mutated the unrelated axis")
	}
}

func TestRectangle_LowerHalfspace_PanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range split value")
		}
	}()
	r := NewRectangle(Point{0}, Point{1})
	r.LowerHalfspace(0, 5)
}

func TestRectangle_ResizeFromPoints(t *testing.T) {
	pts := []DataPoint{
		NewDataPoint(Point{1, 5}),
		NewDataPoint(Point{-2, 3}),
		NewDataPoint(Point{4, 0}),
	}
	r := Rectangle{edges: make([]Interval, 2)}
	r.resizeFromPoints(pts)

	if r.Edge(0).Lo != -2 || r.Edge(0).Hi != 4 {
		t.Errorf("Edge(0) = %v, want [-2, 4]", r.Edge(0))
	}
	if r.Edge(1).Lo != 0 || r.Edge(1).Hi != 5 {
		t.Errorf("Edge(1) = %v, want [0, 5]", r.Edge(1))
	}
}

func TestRectangle_MinDistAxisRect_MatchesScalarGap(t *testing.T) {
	a := NewRectangle(Point{0, 0}, Point{1, 1})
	b := NewRectangle(Point{3, 3}, Point{4, 4})
	for axis := 0; axis < 2; axis++ {
		got := a.MinDistAxisRect(axis, b)
		if !almostEqual(got, 2, 1e-12) {
			t.Errorf("MinDistAxisRect(%d) = %v, want 2", axis, got)
		}
	}
}

func TestRectangle_String_NotEmpty(t *testing.T) {
	r := NewRectangle(Point{0}, Point{1})
	if r.String() == "" {
		t.Error("String() returned empty string")
	}
}
