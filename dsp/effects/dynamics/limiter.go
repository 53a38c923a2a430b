package dynamics

import (
	"fmt"
	"math"
)

const (
	// Fixed limiter parameters. The limiter is a safety stage guarding the
	// output against clipping, so its threshold and time constants are not
	// user-configurable.
	limiterThreshold = 0.95
	limiterAttackMs  = 1.0
	limiterReleaseMs = 10.0
)

// Limiter is a peak limiter with a fixed threshold just below full scale.
//
// When the detector envelope exceeds the threshold the gain is set to
// threshold/envelope, holding the output peak at the threshold apart from
// the settling error of the fast envelope follower. Below the threshold the
// limiter is transparent.
type Limiter struct {
	threshold  float64
	sampleRate float64

	follower *EnvelopeFollower
}

// NewLimiter creates a limiter with a 0.95 threshold and 1 ms / 10 ms
// attack/release.
//
// Sample rate must be positive and finite.
func NewLimiter(sampleRate float64) (*Limiter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("limiter sample rate must be positive and finite: %f", sampleRate)
	}

	follower, err := NewEnvelopeFollower(sampleRate, limiterAttackMs, limiterReleaseMs)
	if err != nil {
		return nil, err
	}

	return &Limiter{
		threshold:  limiterThreshold,
		sampleRate: sampleRate,
		follower:   follower,
	}, nil
}

// SetSampleRate updates the sample rate and recalculates time constants.
func (l *Limiter) SetSampleRate(sampleRate float64) error {
	if err := l.follower.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("limiter sample rate must be positive and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate

	return nil
}

// --- Getters ---

// Threshold returns the fixed limiting threshold (linear amplitude).
func (l *Limiter) Threshold() float64 { return l.threshold }

// Attack returns the fixed attack time in milliseconds.
func (l *Limiter) Attack() float64 { return l.follower.Attack() }

// Release returns the fixed release time in milliseconds.
func (l *Limiter) Release() float64 { return l.follower.Release() }

// SampleRate returns the current sample rate in Hz.
func (l *Limiter) SampleRate() float64 { return l.sampleRate }

// Envelope returns the current detector envelope (linear amplitude).
func (l *Limiter) Envelope() float64 { return l.follower.Envelope() }

// ProcessSample processes one sample through the limiter.
func (l *Limiter) ProcessSample(input float64) float64 {
	envelope := l.follower.Process(math.Abs(input))

	if envelope <= l.threshold {
		return input
	}

	return input * (l.threshold / envelope)
}

// ProcessInPlace applies limiting to buf in place.
func (l *Limiter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// Reset clears the detector envelope.
func (l *Limiter) Reset() {
	l.follower.Reset()
}
