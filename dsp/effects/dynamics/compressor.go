package dynamics

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/core"
)

const (
	// Default compressor parameters
	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorAttackMs    = 10.0
	defaultCompressorReleaseMs   = 100.0
	defaultCompressorMakeupDB    = 0.0

	// Parameter validation ranges
	minCompressorRatio = 1.0
	maxCompressorRatio = 100.0
)

// CompressorMetrics holds metering information for visualization and analysis.
type CompressorMetrics struct {
	InputPeak     float64 // Maximum input level since last reset
	OutputPeak    float64 // Maximum output level since last reset
	GainReduction float64 // Minimum gain (maximum reduction) since last reset
}

// Compressor implements a dB-domain downward compressor.
//
// The detector envelope is converted to decibels; the amount by which it
// exceeds the threshold is reduced by the factor (1 - 1/ratio) and the
// resulting gain is converted back to linear. Below the threshold only the
// make-up gain is applied, so a signal that never crosses the threshold is
// scaled by exactly 10^(makeup/20).
//
// The compressor is mono. For stereo processing, instantiate two compressors
// or implement stereo-linking externally.
type Compressor struct {
	// User-configurable parameters
	thresholdDB  float64
	ratio        float64
	makeupGainDB float64

	sampleRate float64

	follower *EnvelopeFollower

	// Computed coefficients (cached for performance)
	thresholdLin float64 // Threshold as linear amplitude
	makeupLin    float64 // Linear make-up gain

	// Optional metering
	metrics CompressorMetrics
}

// NewCompressor creates a compressor with vocal-friendly defaults.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Threshold: -20 dB
//   - Ratio: 4:1
//   - Attack: 10 ms
//   - Release: 100 ms
//   - Make-up gain: 0 dB
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	follower, err := NewEnvelopeFollower(sampleRate, defaultCompressorAttackMs, defaultCompressorReleaseMs)
	if err != nil {
		return nil, err
	}

	c := &Compressor{
		thresholdDB:  defaultCompressorThresholdDB,
		ratio:        defaultCompressorRatio,
		makeupGainDB: defaultCompressorMakeupDB,
		sampleRate:   sampleRate,
		follower:     follower,
		metrics:      CompressorMetrics{GainReduction: 1.0},
	}

	c.updateCoefficients()

	return c, nil
}

// SetThreshold sets the compression threshold in dB.
// Typical range: -60 to 0 dB. Signals above this level will be compressed.
func (c *Compressor) SetThreshold(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("compressor threshold must be finite: %f", dB)
	}

	c.thresholdDB = dB
	c.updateCoefficients()

	return nil
}

// SetRatio sets the compression ratio.
// Range: 1.0 to 100.0
//   - 1.0 = no compression
//   - 4.0 = 4:1 (musical compression)
//   - 100.0 ≈ limiting
func (c *Compressor) SetRatio(ratio float64) error {
	if ratio < minCompressorRatio || ratio > maxCompressorRatio ||
		math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("compressor ratio must be in [%f, %f]: %f",
			minCompressorRatio, maxCompressorRatio, ratio)
	}

	c.ratio = ratio

	return nil
}

// SetAttack sets the detector attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	return c.follower.SetAttack(ms)
}

// SetRelease sets the detector release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	return c.follower.SetRelease(ms)
}

// SetMakeupGain sets the make-up gain in dB applied after compression.
func (c *Compressor) SetMakeupGain(dB float64) error {
	if math.IsNaN(dB) || math.IsInf(dB, 0) {
		return fmt.Errorf("compressor makeup gain must be finite: %f", dB)
	}

	c.makeupGainDB = dB
	c.updateCoefficients()

	return nil
}

// SetSampleRate updates the sample rate and recalculates time constants.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if err := c.follower.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("compressor sample rate must be positive and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate

	return nil
}

// --- Getters ---

// Threshold returns the current threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the current compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Attack returns the current attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.follower.Attack() }

// Release returns the current release time in milliseconds.
func (c *Compressor) Release() float64 { return c.follower.Release() }

// MakeupGain returns the current make-up gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupGainDB }

// SampleRate returns the current sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Envelope returns the current detector envelope (linear amplitude).
func (c *Compressor) Envelope() float64 { return c.follower.Envelope() }

// ProcessSample processes one sample through the compressor.
func (c *Compressor) ProcessSample(input float64) float64 {
	inputLevel := math.Abs(input)
	envelope := c.follower.Process(inputLevel)

	gain := 1.0
	if envelope > c.thresholdLin {
		envelopeDB := 20.0 * mathLog10(envelope)
		reductionDB := (envelopeDB - c.thresholdDB) * (1.0 - 1.0/c.ratio)
		gain = mathPower10(-reductionDB / 20.0)
	}

	output := input * gain * c.makeupLin

	c.updateMetrics(inputLevel, math.Abs(output), gain)

	return output
}

// ProcessInPlace applies compression to buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// CalculateOutputLevel computes the steady-state output level for a given
// input magnitude. This allows visualizing the compression curve without
// envelope dynamics.
func (c *Compressor) CalculateOutputLevel(inputMagnitude float64) float64 {
	inputMagnitude = math.Abs(inputMagnitude)

	gain := 1.0
	if inputMagnitude > c.thresholdLin {
		levelDB := 20.0 * mathLog10(inputMagnitude)
		reductionDB := (levelDB - c.thresholdDB) * (1.0 - 1.0/c.ratio)
		gain = mathPower10(-reductionDB / 20.0)
	}

	return inputMagnitude * gain * c.makeupLin
}

// Reset clears the detector envelope and metrics.
func (c *Compressor) Reset() {
	c.follower.Reset()
	c.metrics = CompressorMetrics{GainReduction: 1.0}
}

// GetMetrics returns current metering values.
func (c *Compressor) GetMetrics() CompressorMetrics {
	return c.metrics
}

// ResetMetrics clears metering state.
func (c *Compressor) ResetMetrics() {
	c.metrics = CompressorMetrics{GainReduction: 1.0}
}

// updateCoefficients recalculates cached linear values.
func (c *Compressor) updateCoefficients() {
	c.thresholdLin = core.DBToLinear(c.thresholdDB)
	c.makeupLin = core.DBToLinear(c.makeupGainDB)
}

// updateMetrics tracks peak levels and gain reduction.
func (c *Compressor) updateMetrics(inputLevel, outputLevel, gain float64) {
	if inputLevel > c.metrics.InputPeak {
		c.metrics.InputPeak = inputLevel
	}

	if outputLevel > c.metrics.OutputPeak {
		c.metrics.OutputPeak = outputLevel
	}

	if c.metrics.GainReduction == 1.0 || gain < c.metrics.GainReduction {
		c.metrics.GainReduction = gain
	}
}
