package kde

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// almostEqual reports whether a and b differ by no more than tol, either
// in absolute terms or relative to their magnitude. Grounded on
// FloatUtils.h's almost_equal.
func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= tol {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*tol
}

// logSumExp returns log(sum(exp(xs))) computed in a numerically stable way.
// Used by LogDirectEval to sum per-reference-point log-contributions
// without the underflow a direct exp/sum/log would risk for distant points
// at a small bandwidth.
func logSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(xs)
}
