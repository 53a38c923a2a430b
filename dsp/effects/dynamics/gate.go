package dynamics

import (
	"fmt"
	"math"
)

const (
	// Default gate parameters
	defaultGateThreshold = 0.01 // linear amplitude, -40 dB
	defaultGateRatio     = 2.0
	defaultGateAttackMs  = 1.0
	defaultGateReleaseMs = 100.0

	// Gate parameter validation ranges
	minGateRatio = 0.1
	maxGateRatio = 100.0
)

// NoiseGate attenuates signal whose envelope falls below a linear threshold.
//
// Below the threshold the gain follows the power curve
//
//	gain = (envelope/threshold)^(1/ratio)
//
// which shrinks toward zero as the envelope does, so quiet passages fade
// smoothly instead of cutting off. At or above the threshold the gate passes
// unity. The threshold is a linear amplitude, matching how the surrounding
// chain expresses gate settings.
type NoiseGate struct {
	threshold float64
	ratio     float64

	sampleRate float64

	follower *EnvelopeFollower
}

// NewNoiseGate creates a gate with gentle defaults.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Threshold: 0.01 (-40 dB)
//   - Ratio: 2.0
//   - Attack: 1 ms
//   - Release: 100 ms
func NewNoiseGate(sampleRate float64) (*NoiseGate, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("gate sample rate must be positive and finite: %f", sampleRate)
	}

	follower, err := NewEnvelopeFollower(sampleRate, defaultGateAttackMs, defaultGateReleaseMs)
	if err != nil {
		return nil, err
	}

	return &NoiseGate{
		threshold:  defaultGateThreshold,
		ratio:      defaultGateRatio,
		sampleRate: sampleRate,
		follower:   follower,
	}, nil
}

// SetThreshold sets the gate threshold as a linear amplitude.
// Must be positive; signals below this level are attenuated.
func (g *NoiseGate) SetThreshold(threshold float64) error {
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("gate threshold must be positive and finite: %f", threshold)
	}

	g.threshold = threshold

	return nil
}

// SetRatio sets the attenuation curve exponent denominator.
// Range: 0.1 to 100. Smaller ratios attenuate quiet signal more steeply.
func (g *NoiseGate) SetRatio(ratio float64) error {
	if ratio < minGateRatio || ratio > maxGateRatio ||
		math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("gate ratio must be in [%f, %f]: %f",
			minGateRatio, maxGateRatio, ratio)
	}

	g.ratio = ratio

	return nil
}

// SetAttack sets the detector attack time in milliseconds.
func (g *NoiseGate) SetAttack(ms float64) error {
	return g.follower.SetAttack(ms)
}

// SetRelease sets the detector release time in milliseconds.
func (g *NoiseGate) SetRelease(ms float64) error {
	return g.follower.SetRelease(ms)
}

// SetSampleRate updates the sample rate and recalculates time constants.
func (g *NoiseGate) SetSampleRate(sampleRate float64) error {
	if err := g.follower.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("gate sample rate must be positive and finite: %f", sampleRate)
	}

	g.sampleRate = sampleRate

	return nil
}

// --- Getters ---

// Threshold returns the current linear threshold.
func (g *NoiseGate) Threshold() float64 { return g.threshold }

// Ratio returns the current curve exponent denominator.
func (g *NoiseGate) Ratio() float64 { return g.ratio }

// Attack returns the current attack time in milliseconds.
func (g *NoiseGate) Attack() float64 { return g.follower.Attack() }

// Release returns the current release time in milliseconds.
func (g *NoiseGate) Release() float64 { return g.follower.Release() }

// SampleRate returns the current sample rate in Hz.
func (g *NoiseGate) SampleRate() float64 { return g.sampleRate }

// Envelope returns the current detector envelope (linear amplitude).
func (g *NoiseGate) Envelope() float64 { return g.follower.Envelope() }

// ProcessSample processes one sample through the gate.
func (g *NoiseGate) ProcessSample(input float64) float64 {
	envelope := g.follower.Process(math.Abs(input))

	if envelope >= g.threshold {
		return input
	}

	if envelope <= 0 {
		return 0
	}

	// (envelope/threshold)^(1/ratio) via base-10 identity
	gain := mathPower10(mathLog10(envelope/g.threshold) / g.ratio)

	return input * gain
}

// ProcessInPlace applies gating to buf in place.
func (g *NoiseGate) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

// Reset clears the detector envelope.
func (g *NoiseGate) Reset() {
	g.follower.Reset()
}
