package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

// --- frequency response ---

func TestResponseMatchesClosedForm(t *testing.T) {
	const sampleRate = 44100.0

	coeffs := []Coefficients{
		Identity(),
		testCoefficients(),
		{B0: 0.3, B1: -0.2, B2: 0.1, A1: -0.5, A2: 0.25},
	}
	freqs := []float64{50, 440, 1000, 5000, 12000, 20000}

	for _, c := range coeffs {
		for _, f := range freqs {
			fromComplex := cmplx.Abs(c.Response(f, sampleRate))
			fromClosed := math.Sqrt(c.MagnitudeSquared(f, sampleRate))

			if !approxEqual(fromComplex, fromClosed, 1e-9) {
				t.Fatalf("|H(%v)| complex = %v, closed form = %v for %+v", f, fromComplex, fromClosed, c)
			}
		}
	}
}

func TestIdentityResponse(t *testing.T) {
	c := Identity()

	for _, f := range []float64{100, 1000, 10000} {
		if db := c.MagnitudeDB(f, 44100); !approxEqual(db, 0, 1e-12) {
			t.Fatalf("identity MagnitudeDB(%v) = %v, want 0", f, db)
		}
		if p := c.Phase(f, 44100); !approxEqual(p, 0, 1e-12) {
			t.Fatalf("identity Phase(%v) = %v, want 0", f, p)
		}
	}
}

func TestChainResponseIsProductOfSections(t *testing.T) {
	const sampleRate = 48000.0

	a := testCoefficients()
	b := Coefficients{B0: 0.3, B1: -0.2, B2: 0.1, A1: -0.5, A2: 0.25}
	chain := NewChain([]Coefficients{a, b}, WithGain(0.5))

	for _, f := range []float64{200, 2000, 8000} {
		want := complex(0.5, 0) * a.Response(f, sampleRate) * b.Response(f, sampleRate)
		got := chain.Response(f, sampleRate)

		if cmplx.Abs(got-want) > 1e-12 {
			t.Fatalf("chain Response(%v) = %v, want %v", f, got, want)
		}
	}
}

// --- impulse response ---

func TestImpulseResponseFIR(t *testing.T) {
	// With zero feedback the impulse response is just the b coefficients.
	s := NewSection(Coefficients{B0: 0.5, B1: 0.25, B2: 0.125})

	ir := s.ImpulseResponse(5)
	want := []float64{0.5, 0.25, 0.125, 0, 0}

	for i := range want {
		if !approxEqual(ir[i], want[i], 1e-15) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
}

func TestImpulseResponsePreservesState(t *testing.T) {
	s := NewSection(testCoefficients())
	for _, x := range testSignal(48) {
		s.ProcessSample(x)
	}

	saved := s.State()
	_ = s.ImpulseResponse(64)

	if s.State() != saved {
		t.Fatalf("ImpulseResponse changed state: %+v -> %+v", s.State(), saved)
	}
}

func TestImpulseResponseMatchesProcessing(t *testing.T) {
	chain := NewChain([]Coefficients{testCoefficients(), testCoefficients()})

	ir := chain.ImpulseResponse(32)

	fresh := NewChain([]Coefficients{testCoefficients(), testCoefficients()})
	impulse := make([]float64, 32)
	impulse[0] = 1
	fresh.ProcessBlock(impulse)

	for i := range ir {
		if !approxEqual(ir[i], impulse[i], 1e-12) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], impulse[i])
		}
	}
}

func TestImpulseResponseEmpty(t *testing.T) {
	s := NewSection(Identity())
	if ir := s.ImpulseResponse(0); ir != nil {
		t.Fatalf("ImpulseResponse(0) = %v, want nil", ir)
	}
}
