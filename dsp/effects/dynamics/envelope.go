package dynamics

import (
	"fmt"
	"math"
)

const (
	// Envelope time-constant validation ranges
	minEnvelopeAttackMs  = 0.1
	maxEnvelopeAttackMs  = 1000.0
	minEnvelopeReleaseMs = 1.0
	maxEnvelopeReleaseMs = 5000.0
)

// EnvelopeFollower is a first-order peak follower with separate attack and
// release time constants. It is the detector primitive shared by all
// processors in this package.
//
// Each update blends the previous envelope with the rectified input level:
//
//	envelope = coeff*envelope + (1-coeff)*level
//
// where coeff is the attack coefficient exp(-1/(attack_s*sampleRate)) while
// the level is rising and the release coefficient otherwise. Smaller time
// constants make the envelope track the signal more closely.
type EnvelopeFollower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	// Cached per-sample smoothing coefficients
	attackCoeff  float64
	releaseCoeff float64

	envelope float64
}

// NewEnvelopeFollower creates a follower with the given time constants.
//
// Sample rate must be positive and finite. Attack must be in [0.1, 1000] ms,
// release in [1, 5000] ms.
func NewEnvelopeFollower(sampleRate, attackMs, releaseMs float64) (*EnvelopeFollower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope follower sample rate must be positive and finite: %f", sampleRate)
	}

	f := &EnvelopeFollower{sampleRate: sampleRate}

	if err := f.SetAttack(attackMs); err != nil {
		return nil, err
	}

	if err := f.SetRelease(releaseMs); err != nil {
		return nil, err
	}

	return f, nil
}

// SetAttack sets the attack time in milliseconds.
// Range: 0.1 to 1000 ms. Faster attack = envelope rises more quickly.
func (f *EnvelopeFollower) SetAttack(ms float64) error {
	if ms < minEnvelopeAttackMs || ms > maxEnvelopeAttackMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("envelope attack must be in [%f, %f]: %f",
			minEnvelopeAttackMs, maxEnvelopeAttackMs, ms)
	}

	f.attackMs = ms
	f.attackCoeff = timeCoefficient(ms, f.sampleRate)

	return nil
}

// SetRelease sets the release time in milliseconds.
// Range: 1 to 5000 ms. Slower release = envelope decays more slowly.
func (f *EnvelopeFollower) SetRelease(ms float64) error {
	if ms < minEnvelopeReleaseMs || ms > maxEnvelopeReleaseMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("envelope release must be in [%f, %f]: %f",
			minEnvelopeReleaseMs, maxEnvelopeReleaseMs, ms)
	}

	f.releaseMs = ms
	f.releaseCoeff = timeCoefficient(ms, f.sampleRate)

	return nil
}

// SetSampleRate updates the sample rate and recalculates both coefficients.
func (f *EnvelopeFollower) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("envelope follower sample rate must be positive and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.attackCoeff = timeCoefficient(f.attackMs, sampleRate)
	f.releaseCoeff = timeCoefficient(f.releaseMs, sampleRate)

	return nil
}

// Attack returns the current attack time in milliseconds.
func (f *EnvelopeFollower) Attack() float64 { return f.attackMs }

// Release returns the current release time in milliseconds.
func (f *EnvelopeFollower) Release() float64 { return f.releaseMs }

// SampleRate returns the current sample rate in Hz.
func (f *EnvelopeFollower) SampleRate() float64 { return f.sampleRate }

// Envelope returns the current envelope value without advancing it.
func (f *EnvelopeFollower) Envelope() float64 { return f.envelope }

// Process advances the envelope by one sample and returns the new value.
// The level argument is the rectified sample magnitude |x[n]|.
func (f *EnvelopeFollower) Process(level float64) float64 {
	if level > f.envelope {
		f.envelope = f.attackCoeff*f.envelope + (1-f.attackCoeff)*level
	} else {
		f.envelope = f.releaseCoeff*f.envelope + (1-f.releaseCoeff)*level
	}

	return f.envelope
}

// Reset clears the envelope to zero.
func (f *EnvelopeFollower) Reset() {
	f.envelope = 0
}

// timeCoefficient converts a time constant in milliseconds to the per-sample
// smoothing coefficient exp(-1/(t_s*sampleRate)).
func timeCoefficient(ms, sampleRate float64) float64 {
	return math.Exp(-1.0 / (ms * 0.001 * sampleRate))
}
