package kde

import (
	"fmt"
	"math"
	"strings"
)

// Rectangle is an axis-aligned bounding box: a D-sequence of Interval. It is
// the bbox stored on every Kdtree node and is the basis of the min/max
// distance bounds the evaluators propagate.
type Rectangle struct {
	edges []Interval
}

// NewRectangle builds a Rectangle enclosing p1 and p2 (the two corners need
// not be ordered per axis).
func NewRectangle(p1, p2 Point) Rectangle {
	edges := make([]Interval, len(p1))
	for i := range p1 {
		lo, hi := p1[i], p2[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		edges[i] = Interval{Lo: lo, Hi: hi}
	}
	return Rectangle{edges: edges}
}

// Dim returns the dimensionality of r.
func (r Rectangle) Dim() int { return len(r.edges) }

// Edge returns the interval along dimension d.
func (r Rectangle) Edge(d int) Interval { return r.edges[d] }

// resizeFromPoints grows r in place to the tight bounding box of points.
// Used only during tree construction.
func (r *Rectangle) resizeFromPoints(points []DataPoint) {
	dim := len(r.edges)
	for d := 0; d < dim; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range points {
			v := p.P[d]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		r.edges[d] = Interval{Lo: lo, Hi: hi}
	}
}

// MinDist returns the minimum Euclidean distance from g to any point in r.
func (r Rectangle) MinDist(g Point) float64 {
	var total float64
	for d, e := range r.edges {
		c := e.MinDist(g[d])
		total += c * c
	}
	return math.Sqrt(total)
}

// MaxDist returns the maximum Euclidean distance from g to any point in r.
func (r Rectangle) MaxDist(g Point) float64 {
	var total float64
	for d, e := range r.edges {
		c := e.MaxDist(g[d])
		total += c * c
	}
	return math.Sqrt(total)
}

// MinDistAxis returns the minimum distance from g to r restricted to axis i.
func (r Rectangle) MinDistAxis(i int, g Point) float64 { return r.edges[i].MinDist(g[i]) }

// MaxDistAxis returns the maximum distance from g to r restricted to axis i.
func (r Rectangle) MaxDistAxis(i int, g Point) float64 { return r.edges[i].MaxDist(g[i]) }

// MinDistAxisRect returns the minimum distance between r and other
// restricted to axis i.
func (r Rectangle) MinDistAxisRect(i int, other Rectangle) float64 {
	return r.edges[i].minDistInterval(other.edges[i])
}

// MaxDistAxisRect returns the maximum distance between r and other
// restricted to axis i.
func (r Rectangle) MaxDistAxisRect(i int, other Rectangle) float64 {
	return r.edges[i].maxDistInterval(other.edges[i])
}

// MinDistRect returns the minimum Euclidean distance between r and other:
// the per-axis separation between the two intervals (0 where they overlap).
func (r Rectangle) MinDistRect(other Rectangle) float64 {
	var total float64
	for d, e := range r.edges {
		o := other.edges[d]
		var gap float64
		switch {
		case e.Hi < o.Lo:
			gap = o.Lo - e.Hi
		case o.Hi < e.Lo:
			gap = e.Lo - o.Hi
		}
		total += gap * gap
	}
	return math.Sqrt(total)
}

// Contains reports whether g lies within every axis of r.
func (r Rectangle) Contains(g Point) bool {
	for d, e := range r.edges {
		if !e.Contains(g[d]) {
			return false
		}
	}
	return true
}

// LowerHalfspace returns the child rectangle obtained by replacing axis d
// with [Lo, v]. v must lie within the current interval; violating that is a
// programming error (an internal invariant violation a caller of the public
// KernelDensity API can never trigger), so it panics rather than returning
// an error.
func (r Rectangle) LowerHalfspace(d int, v float64) Rectangle {
	if !r.edges[d].Contains(v) {
		panic(fmt.Sprintf("kde: LowerHalfspace: split value %g out of range of edge %s on axis %d", v, r.edges[d], d))
	}
	out := r.clone()
	out.edges[d] = Interval{Lo: r.edges[d].Lo, Hi: v}
	return out
}

// UpperHalfspace returns the child rectangle obtained by replacing axis d
// with [v, Hi]. Panics under the same condition as LowerHalfspace.
func (r Rectangle) UpperHalfspace(d int, v float64) Rectangle {
	if !r.edges[d].Contains(v) {
		panic(fmt.Sprintf("kde: UpperHalfspace: split value %g out of range of edge %s on axis %d", v, r.edges[d], d))
	}
	out := r.clone()
	out.edges[d] = Interval{Lo: v, Hi: r.edges[d].Hi}
	return out
}

func (r Rectangle) clone() Rectangle {
	edges := make([]Interval, len(r.edges))
	copy(edges, r.edges)
	return Rectangle{edges: edges}
}

func (r Rectangle) String() string {
	parts := make([]string, len(r.edges))
	for i, e := range r.edges {
		parts[i] = e.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
