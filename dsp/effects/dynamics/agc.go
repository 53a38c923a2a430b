package dynamics

import (
	"fmt"
	"math"
)

const (
	// Default AGC parameters
	defaultAGCTargetLevel = 0.5
	defaultAGCMaxGain     = 4.0
	defaultAGCAttackMs    = 10.0
	defaultAGCReleaseMs   = 100.0

	// Gain smoothing time constants. Raising gain is deliberately slower
	// than lowering it so pauses between phrases do not pump the noise
	// floor upward.
	agcGainRiseMs = 500.0
	agcGainFallMs = 50.0

	// AGC parameter validation ranges
	minAGCTargetLevel = 0.01
	maxAGCTargetLevel = 1.0
	minAGCMaxGain     = 1.0
	maxAGCMaxGain     = 100.0
)

// AGC implements automatic gain control, steering signal level toward a
// target amplitude regardless of input level.
//
// The desired gain is targetLevel/envelope, clamped to [1/maxGain, maxGain].
// A silent input (envelope zero) yields the maximum gain rather than a
// division by zero. The applied gain follows the desired gain through
// asymmetric one-pole smoothing.
type AGC struct {
	targetLevel float64
	maxGain     float64

	sampleRate float64

	follower *EnvelopeFollower

	// Smoothed gain state
	currentGain float64
	riseCoeff   float64
	fallCoeff   float64
}

// NewAGC creates an automatic gain control with moderate defaults.
//
// Sample rate must be positive and finite.
//
// Default parameters:
//   - Target level: 0.5
//   - Maximum gain: 4.0 (±12 dB range)
//   - Attack: 10 ms
//   - Release: 100 ms
func NewAGC(sampleRate float64) (*AGC, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("agc sample rate must be positive and finite: %f", sampleRate)
	}

	follower, err := NewEnvelopeFollower(sampleRate, defaultAGCAttackMs, defaultAGCReleaseMs)
	if err != nil {
		return nil, err
	}

	a := &AGC{
		targetLevel: defaultAGCTargetLevel,
		maxGain:     defaultAGCMaxGain,
		sampleRate:  sampleRate,
		follower:    follower,
		currentGain: 1.0,
	}

	a.updateGainCoefficients()

	return a, nil
}

// SetTargetLevel sets the output level the AGC steers toward.
// Range: 0.01 to 1.0 (linear amplitude).
func (a *AGC) SetTargetLevel(level float64) error {
	if level < minAGCTargetLevel || level > maxAGCTargetLevel ||
		math.IsNaN(level) || math.IsInf(level, 0) {
		return fmt.Errorf("agc target level must be in [%f, %f]: %f",
			minAGCTargetLevel, maxAGCTargetLevel, level)
	}

	a.targetLevel = level

	return nil
}

// SetMaxGain sets the gain clamp. The applied gain stays within
// [1/maxGain, maxGain]. Range: 1.0 to 100.0.
func (a *AGC) SetMaxGain(maxGain float64) error {
	if maxGain < minAGCMaxGain || maxGain > maxAGCMaxGain ||
		math.IsNaN(maxGain) || math.IsInf(maxGain, 0) {
		return fmt.Errorf("agc max gain must be in [%f, %f]: %f",
			minAGCMaxGain, maxAGCMaxGain, maxGain)
	}

	a.maxGain = maxGain

	return nil
}

// SetAttack sets the detector attack time in milliseconds.
func (a *AGC) SetAttack(ms float64) error {
	return a.follower.SetAttack(ms)
}

// SetRelease sets the detector release time in milliseconds.
func (a *AGC) SetRelease(ms float64) error {
	return a.follower.SetRelease(ms)
}

// SetSampleRate updates the sample rate and recalculates time constants.
func (a *AGC) SetSampleRate(sampleRate float64) error {
	if err := a.follower.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("agc sample rate must be positive and finite: %f", sampleRate)
	}

	a.sampleRate = sampleRate
	a.updateGainCoefficients()

	return nil
}

// --- Getters ---

// TargetLevel returns the current target level (linear amplitude).
func (a *AGC) TargetLevel() float64 { return a.targetLevel }

// MaxGain returns the current gain clamp.
func (a *AGC) MaxGain() float64 { return a.maxGain }

// Attack returns the current attack time in milliseconds.
func (a *AGC) Attack() float64 { return a.follower.Attack() }

// Release returns the current release time in milliseconds.
func (a *AGC) Release() float64 { return a.follower.Release() }

// SampleRate returns the current sample rate in Hz.
func (a *AGC) SampleRate() float64 { return a.sampleRate }

// CurrentGain returns the smoothed gain currently being applied.
func (a *AGC) CurrentGain() float64 { return a.currentGain }

// Envelope returns the current detector envelope (linear amplitude).
func (a *AGC) Envelope() float64 { return a.follower.Envelope() }

// ProcessSample processes one sample through the AGC.
func (a *AGC) ProcessSample(input float64) float64 {
	envelope := a.follower.Process(math.Abs(input))

	desired := a.maxGain
	if envelope > 0 {
		desired = a.targetLevel / envelope
		if desired > a.maxGain {
			desired = a.maxGain
		} else if desired < 1.0/a.maxGain {
			desired = 1.0 / a.maxGain
		}
	}

	coeff := a.fallCoeff
	if desired > a.currentGain {
		coeff = a.riseCoeff
	}

	a.currentGain = coeff*a.currentGain + (1-coeff)*desired

	return input * a.currentGain
}

// ProcessInPlace applies gain control to buf in place.
func (a *AGC) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = a.ProcessSample(buf[i])
	}
}

// Reset clears the detector envelope and returns the gain to unity.
func (a *AGC) Reset() {
	a.follower.Reset()
	a.currentGain = 1.0
}

func (a *AGC) updateGainCoefficients() {
	a.riseCoeff = timeCoefficient(agcGainRiseMs, a.sampleRate)
	a.fallCoeff = timeCoefficient(agcGainFallMs, a.sampleRate)
}
