package effects

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/filter/biquad"
	"github.com/vocalix/vocalfx/dsp/filter/design"
)

// Three-band layout used for the simple low/mid/high control surface.
const (
	eqLowShelfFreq  = 100.0
	eqMidPeakFreq   = 1000.0
	eqHighShelfFreq = 10000.0

	eqShelfQ = 1.0
	eqPeakQ  = 1.0
)

// EQBand describes one equalizer stage as a frequency/gain/Q/kind tuple.
//
// GainDB is ignored for Butterworth kinds. For notch bands Q sets the
// rejection bandwidth as Frequency/Q.
type EQBand struct {
	Kind      design.Kind
	Frequency float64
	GainDB    float64
	Q         float64
}

// EqualizerSettings bundles the three-band gain surface in dB.
// Gains are typically within ±12 dB.
type EqualizerSettings struct {
	LowGainDB  float64
	MidGainDB  float64
	HighGainDB float64
}

// Validate reports the first non-finite gain.
func (s EqualizerSettings) Validate() error {
	for _, g := range []float64{s.LowGainDB, s.MidGainDB, s.HighGainDB} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("equalizer gain must be finite: %f", g)
		}
	}

	return nil
}

// Equalizer chains biquad stages, one per configured band, each with
// independent filter state.
//
// The coefficient designers do not defend against degenerate inputs, so the
// equalizer validates every band (frequency below Nyquist, positive Q)
// before designing. Gain changes redesign coefficients in place and keep
// the filter state, so adjustments stay click-free mid-stream.
type Equalizer struct {
	sampleRate float64
	bands      []EQBand
	chain      *biquad.Chain
}

// NewEqualizer creates an equalizer from an explicit band list.
//
// Sample rate must be positive and finite; every band must pass validation.
// The band slice is copied.
func NewEqualizer(sampleRate float64, bands []EQBand) (*Equalizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("equalizer sample rate must be positive and finite: %f", sampleRate)
	}

	coeffs, err := designBands(sampleRate, bands)
	if err != nil {
		return nil, err
	}

	eq := &Equalizer{
		sampleRate: sampleRate,
		bands:      append([]EQBand(nil), bands...),
		chain:      biquad.NewChain(coeffs),
	}

	return eq, nil
}

// ThreeBandLayout returns the standard vocal low/mid/high band list with
// the given gains: a 100 Hz low shelf, a 1 kHz peaking band, and a 10 kHz
// high shelf.
func ThreeBandLayout(lowDB, midDB, highDB float64) []EQBand {
	return []EQBand{
		{Kind: design.KindLowShelf, Frequency: eqLowShelfFreq, GainDB: lowDB, Q: eqShelfQ},
		{Kind: design.KindPeaking, Frequency: eqMidPeakFreq, GainDB: midDB, Q: eqPeakQ},
		{Kind: design.KindHighShelf, Frequency: eqHighShelfFreq, GainDB: highDB, Q: eqShelfQ},
	}
}

// NewThreeBandEqualizer creates the standard vocal low/mid/high layout,
// all flat at 0 dB.
func NewThreeBandEqualizer(sampleRate float64) (*Equalizer, error) {
	return NewEqualizer(sampleRate, ThreeBandLayout(0, 0, 0))
}

// SetGains updates the low/mid/high gains of a three-band equalizer.
// Filter state is preserved so the change is click-free.
func (eq *Equalizer) SetGains(lowDB, midDB, highDB float64) error {
	if len(eq.bands) != 3 {
		return fmt.Errorf("equalizer has %d bands, gain triple needs 3", len(eq.bands))
	}

	for _, g := range []float64{lowDB, midDB, highDB} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("equalizer gain must be finite: %f", g)
		}
	}

	bands := append([]EQBand(nil), eq.bands...)
	bands[0].GainDB = lowDB
	bands[1].GainDB = midDB
	bands[2].GainDB = highDB

	return eq.SetBands(bands)
}

// ApplySettings updates the three-band gains from a settings bundle.
func (eq *Equalizer) ApplySettings(s EqualizerSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	return eq.SetGains(s.LowGainDB, s.MidGainDB, s.HighGainDB)
}

// Settings returns the three-band gains. For custom band layouts the
// zero bundle is returned.
func (eq *Equalizer) Settings() EqualizerSettings {
	if len(eq.bands) != 3 {
		return EqualizerSettings{}
	}

	return EqualizerSettings{
		LowGainDB:  eq.bands[0].GainDB,
		MidGainDB:  eq.bands[1].GainDB,
		HighGainDB: eq.bands[2].GainDB,
	}
}

// SetBands replaces the band list, redesigning all coefficients.
// If the band count is unchanged the per-stage filter state is preserved;
// otherwise the stages are rebuilt with cleared state.
func (eq *Equalizer) SetBands(bands []EQBand) error {
	coeffs, err := designBands(eq.sampleRate, bands)
	if err != nil {
		return err
	}

	eq.bands = append(eq.bands[:0:0], bands...)
	eq.chain.UpdateCoefficients(coeffs, eq.chain.Gain())

	return nil
}

// Bands returns a copy of the configured bands.
func (eq *Equalizer) Bands() []EQBand {
	return append([]EQBand(nil), eq.bands...)
}

// NumBands returns the number of configured bands.
func (eq *Equalizer) NumBands() int { return len(eq.bands) }

// SampleRate returns the sample rate the bands were designed for.
func (eq *Equalizer) SampleRate() float64 { return eq.sampleRate }

// MagnitudeDB returns the equalizer's combined magnitude response in dB at
// the given frequency.
func (eq *Equalizer) MagnitudeDB(freq float64) float64 {
	return eq.chain.MagnitudeDB(freq, eq.sampleRate)
}

// ProcessSample processes one sample through all bands in series.
func (eq *Equalizer) ProcessSample(x float64) float64 {
	return eq.chain.ProcessSample(x)
}

// ProcessInPlace applies the equalizer to buf in place.
func (eq *Equalizer) ProcessInPlace(buf []float64) {
	eq.chain.ProcessBlock(buf)
}

// Reset clears all per-stage filter state.
func (eq *Equalizer) Reset() {
	eq.chain.Reset()
}

// designBands validates and designs coefficients for each band.
func designBands(sampleRate float64, bands []EQBand) ([]biquad.Coefficients, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("equalizer needs at least one band")
	}

	coeffs := make([]biquad.Coefficients, len(bands))

	for i, b := range bands {
		if err := validateBand(sampleRate, b); err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}

		coeffs[i] = designBand(sampleRate, b)
	}

	return coeffs, nil
}

func validateBand(sampleRate float64, b EQBand) error {
	nyquist := sampleRate / 2

	if b.Frequency <= 0 || b.Frequency >= nyquist || math.IsNaN(b.Frequency) {
		return fmt.Errorf("equalizer band frequency must be in (0, nyquist): %f", b.Frequency)
	}

	switch b.Kind {
	case design.KindLowpass, design.KindHighpass:
		return nil
	case design.KindLowShelf, design.KindHighShelf, design.KindPeaking, design.KindNotch:
		if b.Q <= 0 || math.IsNaN(b.Q) || math.IsInf(b.Q, 0) {
			return fmt.Errorf("equalizer band q must be positive and finite: %f", b.Q)
		}

		if math.IsNaN(b.GainDB) || math.IsInf(b.GainDB, 0) {
			return fmt.Errorf("equalizer band gain must be finite: %f", b.GainDB)
		}

		return nil
	default:
		return fmt.Errorf("equalizer band kind unknown: %v", b.Kind)
	}
}

func designBand(sampleRate float64, b EQBand) biquad.Coefficients {
	switch b.Kind {
	case design.KindLowpass:
		return design.ButterworthLowpass(sampleRate, b.Frequency)
	case design.KindHighpass:
		return design.ButterworthHighpass(sampleRate, b.Frequency)
	case design.KindLowShelf:
		return design.LowShelf(sampleRate, b.Frequency, b.GainDB, b.Q)
	case design.KindHighShelf:
		return design.HighShelf(sampleRate, b.Frequency, b.GainDB, b.Q)
	case design.KindPeaking:
		return design.Peaking(sampleRate, b.Frequency, b.GainDB, b.Q)
	case design.KindNotch:
		return design.Notch(sampleRate, b.Frequency, b.Frequency/b.Q)
	default:
		return biquad.Identity()
	}
}
