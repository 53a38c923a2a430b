package biquad

import "fmt"

// coefficientCount is the size of a complete normalized biquad set.
const coefficientCount = 5

// Coefficients holds the transfer function coefficients for a single
// second-order section, pre-normalized by a0:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// The implied leading denominator coefficient is 1 and is not stored.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity returns the pass-through coefficient set (B0=1, all others 0).
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// FromSlice builds a coefficient set from exactly five values ordered
// (b0, b1, b2, a1, a2). A slice of any other length is a programming
// error and is rejected, never truncated or zero-padded.
func FromSlice(vals []float64) (Coefficients, error) {
	if len(vals) != coefficientCount {
		return Coefficients{}, fmt.Errorf("biquad coefficients must contain exactly %d values (b0,b1,b2,a1,a2): %d", coefficientCount, len(vals))
	}

	return Coefficients{
		B0: vals[0],
		B1: vals[1],
		B2: vals[2],
		A1: vals[3],
		A2: vals[4],
	}, nil
}

// Values returns the coefficient set ordered (b0, b1, b2, a1, a2).
func (c Coefficients) Values() [coefficientCount]float64 {
	return [coefficientCount]float64{c.B0, c.B1, c.B2, c.A1, c.A2}
}
