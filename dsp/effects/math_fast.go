//go:build fastmath

package effects

import approx "github.com/meko-christian/algo-approx"

// mathSqrt computes the square root used in per-frame gain paths.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
