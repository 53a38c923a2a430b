package dynamics

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/filter/biquad"
	"github.com/vocalix/vocalfx/dsp/filter/design"
)

const (
	// Default de-esser parameters
	defaultDeEsserCrossoverHz = 6000.0
	defaultDeEsserThresholdDB = -20.0
	defaultDeEsserRatio       = 4.0
	defaultDeEsserAttackMs    = 1.0
	defaultDeEsserReleaseMs   = 50.0

	// Crossover validation range; the upper bound is the Nyquist frequency,
	// checked against the sample rate at call time.
	minDeEsserCrossoverHz = 1000.0
)

// DeEsser reduces sibilance by compressing only the high-frequency band.
//
// The input is split at the crossover with a Butterworth high-pass; the
// low band is recovered by subtracting the high band from the input, so the
// split is perfectly complementary and the dry voice below the crossover is
// never touched. Only the high band passes through the internal compressor
// before the bands are summed again.
type DeEsser struct {
	crossoverHz float64
	sampleRate  float64

	highpass *biquad.Section
	comp     *Compressor
}

// NewDeEsser creates a de-esser with a 6 kHz crossover.
//
// Sample rate must be positive and finite, and above twice the default
// crossover frequency.
//
// Default parameters:
//   - Crossover: 6000 Hz
//   - Threshold: -20 dB
//   - Ratio: 4:1
//   - Attack: 1 ms
//   - Release: 50 ms
func NewDeEsser(sampleRate float64) (*DeEsser, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("de-esser sample rate must be positive and finite: %f", sampleRate)
	}

	if defaultDeEsserCrossoverHz >= sampleRate/2 {
		return nil, fmt.Errorf("de-esser sample rate too low for %g Hz crossover: %f",
			defaultDeEsserCrossoverHz, sampleRate)
	}

	comp, err := NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	// Sibilance control wants faster time constants than the vocal-bus
	// defaults, and no make-up gain on the compressed band.
	if err := comp.SetThreshold(defaultDeEsserThresholdDB); err != nil {
		return nil, err
	}

	if err := comp.SetRatio(defaultDeEsserRatio); err != nil {
		return nil, err
	}

	if err := comp.SetAttack(defaultDeEsserAttackMs); err != nil {
		return nil, err
	}

	if err := comp.SetRelease(defaultDeEsserReleaseMs); err != nil {
		return nil, err
	}

	return &DeEsser{
		crossoverHz: defaultDeEsserCrossoverHz,
		sampleRate:  sampleRate,
		highpass:    biquad.NewSection(design.ButterworthHighpass(sampleRate, defaultDeEsserCrossoverHz)),
		comp:        comp,
	}, nil
}

// SetCrossover sets the band-split frequency in Hz.
// Must lie in [1000, Nyquist). Filter state is preserved across the change.
func (d *DeEsser) SetCrossover(hz float64) error {
	if hz < minDeEsserCrossoverHz || hz >= d.sampleRate/2 ||
		math.IsNaN(hz) || math.IsInf(hz, 0) {
		return fmt.Errorf("de-esser crossover must be in [%f, nyquist): %f",
			minDeEsserCrossoverHz, hz)
	}

	d.crossoverHz = hz
	d.highpass.SetCoefficients(design.ButterworthHighpass(d.sampleRate, hz))

	return nil
}

// SetThreshold sets the high-band compression threshold in dB.
func (d *DeEsser) SetThreshold(dB float64) error {
	return d.comp.SetThreshold(dB)
}

// SetRatio sets the high-band compression ratio.
func (d *DeEsser) SetRatio(ratio float64) error {
	return d.comp.SetRatio(ratio)
}

// SetAttack sets the high-band detector attack time in milliseconds.
func (d *DeEsser) SetAttack(ms float64) error {
	return d.comp.SetAttack(ms)
}

// SetRelease sets the high-band detector release time in milliseconds.
func (d *DeEsser) SetRelease(ms float64) error {
	return d.comp.SetRelease(ms)
}

// --- Getters ---

// Crossover returns the current band-split frequency in Hz.
func (d *DeEsser) Crossover() float64 { return d.crossoverHz }

// Threshold returns the high-band compression threshold in dB.
func (d *DeEsser) Threshold() float64 { return d.comp.Threshold() }

// Ratio returns the high-band compression ratio.
func (d *DeEsser) Ratio() float64 { return d.comp.Ratio() }

// SampleRate returns the current sample rate in Hz.
func (d *DeEsser) SampleRate() float64 { return d.sampleRate }

// ProcessSample processes one sample through the de-esser.
func (d *DeEsser) ProcessSample(input float64) float64 {
	high := d.highpass.ProcessSample(input)
	low := input - high

	return low + d.comp.ProcessSample(high)
}

// ProcessInPlace applies de-essing to buf in place.
func (d *DeEsser) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// Reset clears the crossover filter and compressor state.
func (d *DeEsser) Reset() {
	d.highpass.Reset()
	d.comp.Reset()
}
