//go:build fastmath

package splitter

import (
	"github.com/meko-christian/algo-approx"
)

// mathPow computes x^y as e^(y*ln x) with fast approximations. x must be > 0.
func mathPow(x, y float64) float64 {
	return approx.FastExp(y * approx.FastLog(x))
}

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
