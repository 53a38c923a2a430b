//go:build !fastmath

package effects

import "math"

// mathSqrt computes the square root used in per-frame gain paths.
var mathSqrt = math.Sqrt
