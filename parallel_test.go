package kde

import (
	"math/rand"
	"testing"
)

func newTestDensity(t *testing.T, n, dim int) *KernelDensity {
	t.Helper()
	rng := rand.New(rand.NewSource(99))
	pts := make([]DataPoint, n)
	for i := range pts {
		coords := make(Point, dim)
		for d := range coords {
			coords[d] = rng.NormFloat64()
		}
		pts[i] = NewDataPoint(coords)
	}
	cfg := DefaultConfig()
	cfg.Bandwidth = 0.5
	density, err := New(pts, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return density
}

func TestDirectEvalParallel_MatchesSequential(t *testing.T) {
	density := newTestDensity(t, 300, 2)

	rng := rand.New(rand.NewSource(5))
	queries := make([]DataPoint, 40)
	for i := range queries {
		queries[i] = NewDataPoint(Point{rng.NormFloat64(), rng.NormFloat64()})
	}

	sequential := make([]DataPoint, len(queries))
	copy(sequential, queries)
	directEvalParallel(density, sequential, 1)

	parallelResult := make([]DataPoint, len(queries))
	copy(parallelResult, queries)
	directEvalParallel(density, parallelResult, 4)

	for i := range sequential {
		if sequential[i].Attr.Upper != parallelResult[i].Attr.Upper {
			t.Errorf("query %d: sequential=%v parallel=%v, want bitwise identical", i, sequential[i].Attr.Upper, parallelResult[i].Attr.Upper)
		}
	}
}

func TestDirectEvalParallel_SingleWorkerFallback(t *testing.T) {
	density := newTestDensity(t, 10, 1)
	queries := []DataPoint{NewDataPoint(Point{0}), NewDataPoint(Point{1})}
	directEvalParallel(density, queries, 0)
	for i, q := range queries {
		if q.Attr.Lower != q.Attr.Upper {
			t.Errorf("query %d: direct eval should leave Lower == Upper, got %v, %v", i, q.Attr.Lower, q.Attr.Upper)
		}
	}
}
