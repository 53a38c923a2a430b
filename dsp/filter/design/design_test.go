package design

import (
	"math"
	"testing"

	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/filter/biquad"
)

const testSampleRate = 44100.0

// --- response shapes ---

func TestPeakingGainAtCenter(t *testing.T) {
	tests := []struct {
		name   string
		freq   float64
		gainDB float64
		q      float64
	}{
		{name: "boost200", freq: 200, gainDB: 2, q: 1},
		{name: "boost3k", freq: 3000, gainDB: 3, q: 1.5},
		{name: "cut1k", freq: 1000, gainDB: -6, q: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Peaking(testSampleRate, tt.freq, tt.gainDB, tt.q)

			got := c.MagnitudeDB(tt.freq, testSampleRate)
			if !core.NearlyEqual(got, tt.gainDB, 1e-9) {
				t.Fatalf("MagnitudeDB(center) = %v, want %v", got, tt.gainDB)
			}

			// Two octaves out the bell has mostly returned to unity.
			far := c.MagnitudeDB(tt.freq/4, testSampleRate)
			if math.Abs(far) > math.Abs(tt.gainDB)/2 {
				t.Fatalf("MagnitudeDB(far) = %v, want near 0", far)
			}
		})
	}
}

func TestLowShelfEndpoints(t *testing.T) {
	c := LowShelf(testSampleRate, 100, 6, 0.707)

	if got := c.MagnitudeDB(0, testSampleRate); !core.NearlyEqual(got, 6, 1e-9) {
		t.Fatalf("MagnitudeDB(DC) = %v, want 6", got)
	}
	if got := c.MagnitudeDB(testSampleRate/2, testSampleRate); !core.NearlyEqual(got, 0, 1e-9) {
		t.Fatalf("MagnitudeDB(Nyquist) = %v, want 0", got)
	}
}

func TestHighShelfEndpoints(t *testing.T) {
	c := HighShelf(testSampleRate, 10000, -4, 0.707)

	if got := c.MagnitudeDB(0, testSampleRate); !core.NearlyEqual(got, 0, 1e-9) {
		t.Fatalf("MagnitudeDB(DC) = %v, want 0", got)
	}
	if got := c.MagnitudeDB(testSampleRate/2, testSampleRate); !core.NearlyEqual(got, -4, 1e-9) {
		t.Fatalf("MagnitudeDB(Nyquist) = %v, want -4", got)
	}
}

func TestButterworthLowpassResponse(t *testing.T) {
	c := ButterworthLowpass(testSampleRate, 1000)

	if got := c.MagnitudeDB(0, testSampleRate); !core.NearlyEqual(got, 0, 1e-9) {
		t.Fatalf("MagnitudeDB(DC) = %v, want 0", got)
	}

	// -3 dB at the cutoff: the bilinear transform maps the analog corner
	// exactly onto fc.
	atCutoff := c.MagnitudeDB(1000, testSampleRate)
	if !core.NearlyEqual(atCutoff, 10*math.Log10(0.5), 1e-6) {
		t.Fatalf("MagnitudeDB(fc) = %v, want %v", atCutoff, 10*math.Log10(0.5))
	}

	// Stopband falls monotonically: 8 kHz is attenuated much harder than 500 Hz.
	at500 := c.MagnitudeDB(500, testSampleRate)
	at8k := c.MagnitudeDB(8000, testSampleRate)
	if at8k >= at500-20 {
		t.Fatalf("MagnitudeDB(8k) = %v, MagnitudeDB(500) = %v; want at least 20 dB more attenuation", at8k, at500)
	}
}

func TestButterworthHighpassResponse(t *testing.T) {
	c := ButterworthHighpass(testSampleRate, 80)

	atCutoff := c.MagnitudeDB(80, testSampleRate)
	if !core.NearlyEqual(atCutoff, 10*math.Log10(0.5), 1e-6) {
		t.Fatalf("MagnitudeDB(fc) = %v, want %v", atCutoff, 10*math.Log10(0.5))
	}

	if got := c.MagnitudeDB(10, testSampleRate); got > -25 {
		t.Fatalf("MagnitudeDB(10) = %v, want deep low-frequency rejection", got)
	}
	if got := c.MagnitudeDB(1000, testSampleRate); !core.NearlyEqual(got, 0, 0.01) {
		t.Fatalf("MagnitudeDB(1k) = %v, want ~0", got)
	}
}

func TestNotchResponse(t *testing.T) {
	c := Notch(testSampleRate, 60, 6)

	if got := c.MagnitudeDB(60, testSampleRate); got > -40 {
		t.Fatalf("MagnitudeDB(center) = %v, want deep null", got)
	}
	if got := c.MagnitudeDB(1000, testSampleRate); !core.NearlyEqual(got, 0, 0.05) {
		t.Fatalf("MagnitudeDB(1k) = %v, want ~0", got)
	}

	// Poles stay inside the unit circle for narrow bandwidths.
	if c.A2 >= 1 {
		t.Fatalf("pole radius squared = %v, want < 1", c.A2)
	}
}

// --- stability across the vocal pipeline cutoffs ---

func TestPipelineCutoffsAreStable(t *testing.T) {
	tests := []struct {
		name   string
		coeffs biquad.Coefficients
	}{
		{name: "hp80", coeffs: ButterworthHighpass(testSampleRate, 80)},
		{name: "hp6000", coeffs: ButterworthHighpass(testSampleRate, 6000)},
		{name: "lp12000", coeffs: ButterworthLowpass(testSampleRate, 12000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// |a2| < 1 and |a1| < 1 + a2 is the second-order stability triangle.
			a1, a2 := tt.coeffs.A1, tt.coeffs.A2
			if math.Abs(a2) >= 1 || math.Abs(a1) >= 1+a2 {
				t.Fatalf("coefficients outside stability triangle: a1=%v a2=%v", a1, a2)
			}

			for _, v := range tt.coeffs.Values() {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite coefficient: %+v", tt.coeffs)
				}
			}
		})
	}
}

// --- determinism and the documented validation gap ---

func TestDesignersAreIdempotent(t *testing.T) {
	tests := []struct {
		name string
		d    func() biquad.Coefficients
	}{
		{name: "peaking", d: func() biquad.Coefficients { return Peaking(testSampleRate, 200, 2, 1) }},
		{name: "lowShelf", d: func() biquad.Coefficients { return LowShelf(testSampleRate, 100, 6, 0.707) }},
		{name: "highShelf", d: func() biquad.Coefficients { return HighShelf(testSampleRate, 10000, 2, 0.707) }},
		{name: "lowpass", d: func() biquad.Coefficients { return ButterworthLowpass(testSampleRate, 12000) }},
		{name: "highpass", d: func() biquad.Coefficients { return ButterworthHighpass(testSampleRate, 80) }},
		{name: "notch", d: func() biquad.Coefficients { return Notch(testSampleRate, 60, 6) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if first, second := tt.d(), tt.d(); first != second {
				t.Fatalf("repeat design differs: %+v vs %+v", first, second)
			}
		})
	}
}

func TestDesignerDoesNotValidate(t *testing.T) {
	// Q = 0 is a caller error; the designer hands back whatever the formula
	// produces instead of clamping or failing.
	c := Peaking(testSampleRate, 1000, 6, 0)

	finite := true
	for _, v := range c.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			finite = false
		}
	}
	if finite {
		t.Fatalf("Peaking with q=0 produced finite coefficients %+v; expected degenerate output", c)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindLowpass, "lowpass"},
		{KindHighpass, "highpass"},
		{KindLowShelf, "lowshelf"},
		{KindHighShelf, "highshelf"},
		{KindPeaking, "peaking"},
		{KindNotch, "notch"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
