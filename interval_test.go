package kde

import "testing"

func TestInterval_Contains(t *testing.T) {
	iv := Interval{Lo: 1, Hi: 3}
	cases := []struct {
		v    float64
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, true},
		{4, false},
	}
	for _, c := range cases {
		if got := iv.Contains(c.v); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestInterval_MinDist(t *testing.T) {
	iv := Interval{Lo: 1, Hi: 3}
	cases := []struct {
		v    float64
		want float64
	}{
		{0, 1},
		{1, 0},
		{2, 0},
		{3, 0},
		{5, 2},
	}
	for _, c := range cases {
		if got := iv.MinDist(c.v); got != c.want {
			t.Errorf("MinDist(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestInterval_MaxDist(t *testing.T) {
	iv := Interval{Lo: 1, Hi: 3}
	cases := []struct {
		v    float64
		want float64
	}{
		{1, 2},
		{3, 2},
		{2, 1},
		{0, 3},
	}
	for _, c := range cases {
		if got := iv.MaxDist(c.v); got != c.want {
			t.Errorf("MaxDist(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestInterval_MinDist_NeverExceedsMaxDist(t *testing.T) {
	iv := Interval{Lo: -2, Hi: 5}
	for v := -10.0; v <= 10.0; v += 0.5 {
		if iv.MinDist(v) > iv.MaxDist(v) {
			t.Errorf("v=%v: MinDist %v > MaxDist %v", v, iv.MinDist(v), iv.MaxDist(v))
		}
	}
}

func TestInterval_MinMaxDistInterval_SelfOverlap(t *testing.T) {
	iv := Interval{Lo: 0, Hi: 2}
	if got := iv.minDistInterval(iv); got != 0 {
		t.Errorf("minDistInterval(self) = %v, want 0", got)
	}
}

func TestInterval_MinDistInterval_Disjoint(t *testing.T) {
	a := Interval{Lo: 0, Hi: 1}
	b := Interval{Lo: 3, Hi: 4}
	if got := a.minDistInterval(b); got != 2 {
		t.Errorf("minDistInterval = %v, want 2", got)
	}
	if got := b.minDistInterval(a); got != 2 {
		t.Errorf("minDistInterval (reversed) = %v, want 2", got)
	}
}
