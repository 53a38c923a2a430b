package design

import (
	"math"

	"github.com/vocalix/vocalfx/dsp/filter/biquad"
)

// Peaking designs a bell filter centered on freq with the given gain (dB)
// and Q. Positive gain boosts the band, negative gain cuts it; the response
// returns to unity away from the center.
func Peaking(sampleRate, freq, gainDB, q float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	return normalize(
		1+alpha*a,
		-2*cosw0,
		1-alpha*a,
		1+alpha/a,
		-2*cosw0,
		1-alpha/a,
	)
}

// LowShelf designs a shelving filter that applies the given gain (dB) below
// the corner frequency and returns to unity above it. The shelf slope is
// controlled through beta = sqrt(A)/Q.
func LowShelf(sampleRate, freq, gainDB, q float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cosw0 := math.Cos(w0)
	sinw0 := math.Sin(w0)
	a := math.Pow(10, gainDB/40)
	beta := math.Sqrt(a) / q

	return normalize(
		a*((a+1)-(a-1)*cosw0+beta*sinw0),
		2*a*((a-1)-(a+1)*cosw0),
		a*((a+1)-(a-1)*cosw0-beta*sinw0),
		(a+1)+(a-1)*cosw0+beta*sinw0,
		-2*((a-1)+(a+1)*cosw0),
		(a+1)+(a-1)*cosw0-beta*sinw0,
	)
}

// HighShelf designs a shelving filter that applies the given gain (dB) above
// the corner frequency and returns to unity below it.
func HighShelf(sampleRate, freq, gainDB, q float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cosw0 := math.Cos(w0)
	sinw0 := math.Sin(w0)
	a := math.Pow(10, gainDB/40)
	beta := math.Sqrt(a) / q

	return normalize(
		a*((a+1)+(a-1)*cosw0+beta*sinw0),
		-2*a*((a-1)+(a+1)*cosw0),
		a*((a+1)+(a-1)*cosw0-beta*sinw0),
		(a+1)-(a-1)*cosw0+beta*sinw0,
		2*((a-1)-(a+1)*cosw0),
		(a+1)-(a-1)*cosw0-beta*sinw0,
	)
}

// ButterworthLowpass designs a second-order Butterworth low-pass at the
// given cutoff via the bilinear-transform constant c = 1/tan(pi*fc/sr).
// The response is maximally flat in the passband and -3 dB at the cutoff.
func ButterworthLowpass(sampleRate, freq float64) biquad.Coefficients {
	c := 1 / math.Tan(math.Pi*freq/sampleRate)
	b0 := 1 / (1 + math.Sqrt2*c + c*c)

	return biquad.Coefficients{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * b0 * (1 - c*c),
		A2: b0 * (1 - math.Sqrt2*c + c*c),
	}
}

// ButterworthHighpass designs a second-order Butterworth high-pass at the
// given cutoff via the bilinear-transform constant c = tan(pi*fc/sr).
func ButterworthHighpass(sampleRate, freq float64) biquad.Coefficients {
	c := math.Tan(math.Pi * freq / sampleRate)
	b0 := 1 / (1 + math.Sqrt2*c + c*c)

	return biquad.Coefficients{
		B0: b0,
		B1: -2 * b0,
		B2: b0,
		A1: 2 * b0 * (c*c - 1),
		A2: b0 * (1 - math.Sqrt2*c + c*c),
	}
}

// Notch designs a narrow band-reject filter with zeros on the unit circle
// at the center frequency. The pole radius r = 1 - 3*(bandwidth/sr) sets
// the rejection width; r must stay below 1 for stability, so bandwidth
// must be small relative to the sample rate.
func Notch(sampleRate, freq, bandwidth float64) biquad.Coefficients {
	r := 1 - 3*(bandwidth/sampleRate)
	cosw := math.Cos(2 * math.Pi * freq / sampleRate)
	k := (1 - 2*r*cosw + r*r) / (2 - 2*cosw)

	return biquad.Coefficients{
		B0: k,
		B1: -2 * k * cosw,
		B2: k,
		A1: -2 * r * cosw,
		A2: r * r,
	}
}

// normalize divides all coefficients by a0. A degenerate a0 (zero or
// non-finite) propagates into the result untouched; see the package comment.
func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	inv := 1 / a0

	return biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}
