package effects

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/delay"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	reverbFixedGain       = 0.015
	reverbAllpassFeedback = 0.5

	// Comb feedback is derived from room size: longer decay for larger rooms.
	reverbFeedbackBase  = 0.7
	reverbFeedbackScale = 0.2

	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbWet      = 0.33
	defaultReverbDry      = 0.7
	defaultReverbWidth    = 1.0
)

// Comb and all-pass tunings in samples, calibrated for 44.1 kHz and scaled
// to the actual sample rate at construction time.
var (
	reverbCombTunings    = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTunings = [reverbNumAllpasses]int{556, 441, 341, 225}
)

// ReverbSettings bundles the user-facing reverb parameters.
// All fields are expected in [0, 1].
type ReverbSettings struct {
	RoomSize float64
	Damping  float64
	WetLevel float64
	DryLevel float64
	Width    float64
}

// Validate reports the first out-of-range field.
func (s ReverbSettings) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"room size", s.RoomSize},
		{"damping", s.Damping},
		{"wet level", s.WetLevel},
		{"dry level", s.DryLevel},
		{"width", s.Width},
	}

	for _, f := range fields {
		if f.value < 0 || f.value > 1 || math.IsNaN(f.value) {
			return fmt.Errorf("reverb %s must be in [0, 1]: %f", f.name, f.value)
		}
	}

	return nil
}

// Reverb is a Freeverb-style reverberator: eight parallel feedback combs,
// each with a one-pole damping filter in its feedback path, followed by four
// cascaded all-pass diffusers.
//
// Delay line lengths are fixed at construction; settings changes only adjust
// feedback and mix coefficients, so the tail survives parameter updates. The
// tail also keeps ringing through calls with silent input until it decays
// naturally.
type Reverb struct {
	roomSize float64
	damping  float64
	wet      float64
	dry      float64
	width    float64
	gain     float64

	sampleRate float64

	combs     [reverbNumCombs]reverbComb
	allpasses [reverbNumAllpasses]reverbAllpass
}

type reverbComb struct {
	line        *delay.Line
	feedback    float64
	filterStore float64
	dampA       float64 // damping amount
	dampB       float64 // 1 - damping
}

func (c *reverbComb) process(input float64) float64 {
	output := c.line.Tap()

	// Denormal feedback values otherwise decay forever and stall the FPU.
	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)

	c.line.Push(input + c.filterStore*c.feedback)

	return output
}

func (c *reverbComb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

func (c *reverbComb) reset() {
	c.line.Reset()
	c.filterStore = 0
}

type reverbAllpass struct {
	line *delay.Line
}

func (a *reverbAllpass) process(input float64) float64 {
	delayed := a.line.Tap()
	a.line.Push(input + delayed*reverbAllpassFeedback)

	return delayed - input*reverbAllpassFeedback
}

func (a *reverbAllpass) reset() {
	a.line.Reset()
}

// NewReverb constructs a reverb for the given sample rate with moderate
// room defaults. Delay lengths are the classic 44.1 kHz tunings scaled by
// sampleRate/44100.
func NewReverb(sampleRate float64) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be positive and finite: %f", sampleRate)
	}

	r := &Reverb{
		gain:       reverbFixedGain,
		sampleRate: sampleRate,
	}

	for i, tuning := range reverbCombTunings {
		line, err := delay.NewScaled(tuning, sampleRate)
		if err != nil {
			return nil, err
		}

		r.combs[i].line = line
	}

	for i, tuning := range reverbAllpassTunings {
		line, err := delay.NewScaled(tuning, sampleRate)
		if err != nil {
			return nil, err
		}

		r.allpasses[i].line = line
	}

	if err := r.ApplySettings(ReverbSettings{
		RoomSize: defaultReverbRoomSize,
		Damping:  defaultReverbDamping,
		WetLevel: defaultReverbWet,
		DryLevel: defaultReverbDry,
		Width:    defaultReverbWidth,
	}); err != nil {
		return nil, err
	}

	return r, nil
}

// ApplySettings validates and applies a full settings bundle atomically.
// Delay state is untouched, so the running tail is preserved.
func (r *Reverb) ApplySettings(s ReverbSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.roomSize = s.RoomSize
	r.damping = s.Damping
	r.wet = s.WetLevel
	r.dry = s.DryLevel
	r.width = s.Width

	feedback := reverbFeedbackBase + s.RoomSize*reverbFeedbackScale
	for i := range r.combs {
		r.combs[i].feedback = feedback
		r.combs[i].setDamp(s.Damping)
	}

	return nil
}

// Settings returns the current settings bundle.
func (r *Reverb) Settings() ReverbSettings {
	return ReverbSettings{
		RoomSize: r.roomSize,
		Damping:  r.damping,
		WetLevel: r.wet,
		DryLevel: r.dry,
		Width:    r.width,
	}
}

// --- Getters ---

// RoomSize returns the current room size.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damping returns the current damping amount.
func (r *Reverb) Damping() float64 { return r.damping }

// WetLevel returns the current wet mix level.
func (r *Reverb) WetLevel() float64 { return r.wet }

// DryLevel returns the current dry mix level.
func (r *Reverb) DryLevel() float64 { return r.dry }

// Width returns the current stereo-width scale applied to the wet signal.
func (r *Reverb) Width() float64 { return r.width }

// SampleRate returns the sample rate the delay lines were tuned for.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// ProcessSample processes one sample through the reverb.
//
// With WetLevel zero the comb input still advances (the tail keeps
// evolving) but the output is exactly input*DryLevel.
func (r *Reverb) ProcessSample(input float64) float64 {
	x := input * r.gain

	var wet float64
	for i := range r.combs {
		wet += r.combs[i].process(x)
	}

	for i := range r.allpasses {
		wet = r.allpasses[i].process(wet)
	}

	return input*r.dry + wet*r.wet*r.width
}

// ProcessInPlace applies the reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// Reset clears all delay lines and damping filter state, killing the tail.
func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}

	for i := range r.allpasses {
		r.allpasses[i].reset()
	}
}
