package effectchain

import (
	"fmt"

	"github.com/vocalix/vocalfx/dsp/effects"
	"github.com/vocalix/vocalfx/dsp/effects/dynamics"
)

// Chain runs the vocal effect stages over a block in a configurable order.
//
// Every stage type is constructed once, up front. The order slice decides
// which stages run and in what sequence; the enabled flags gate them
// without touching their state, so a stage toggled off and on resumes
// with its filters, envelopes, and delay lines intact.
type Chain struct {
	sampleRate float64

	equalizer  *effects.Equalizer
	compressor *dynamics.Compressor
	reverb     *effects.Reverb
	limiter    *dynamics.Limiter
	gate       *dynamics.NoiseGate
	agc        *dynamics.AGC

	order   []EffectType
	enabled [numEffectTypes]bool
}

// DefaultOrder returns the stage order a new chain starts with:
// equalizer, compressor, reverb, limiter.
func DefaultOrder() []EffectType {
	return []EffectType{EffectEqualizer, EffectCompressor, EffectReverb, EffectLimiter}
}

// NewChain creates a chain with every stage at its defaults, the default
// order, and all stages enabled. The noise gate and AGC are constructed
// too but only run once appended to the order.
//
// Sample rate must be positive and finite, and high enough for the
// equalizer's 10 kHz shelf, so in practice above 20 kHz.
func NewChain(sampleRate float64) (*Chain, error) {
	equalizer, err := effects.NewThreeBandEqualizer(sampleRate)
	if err != nil {
		return nil, err
	}

	compressor, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	reverb, err := effects.NewReverb(sampleRate)
	if err != nil {
		return nil, err
	}

	limiter, err := dynamics.NewLimiter(sampleRate)
	if err != nil {
		return nil, err
	}

	gate, err := dynamics.NewNoiseGate(sampleRate)
	if err != nil {
		return nil, err
	}

	agc, err := dynamics.NewAGC(sampleRate)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		sampleRate: sampleRate,
		equalizer:  equalizer,
		compressor: compressor,
		reverb:     reverb,
		limiter:    limiter,
		gate:       gate,
		agc:        agc,
		order:      DefaultOrder(),
	}

	for t := range c.enabled {
		c.enabled[t] = true
	}

	return c, nil
}

// SampleRate returns the sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// Order returns a copy of the current stage order.
func (c *Chain) Order() []EffectType {
	return append([]EffectType(nil), c.order...)
}

// SetOrder replaces the stage order. Every entry must be a known effect
// type and no type may appear twice. Stages left out of the order simply
// do not run; their state is kept.
func (c *Chain) SetOrder(order []EffectType) error {
	var seen [numEffectTypes]bool

	for _, t := range order {
		if !t.valid() {
			return fmt.Errorf("chain order has unknown effect type: %d", int(t))
		}

		if seen[t] {
			return fmt.Errorf("chain order lists %s twice", t)
		}

		seen[t] = true
	}

	c.order = append(c.order[:0:0], order...)

	return nil
}

// Append adds a stage to the end of the order. Appending a stage that is
// already in the order is an error.
func (c *Chain) Append(t EffectType) error {
	if !t.valid() {
		return fmt.Errorf("chain order has unknown effect type: %d", int(t))
	}

	for _, existing := range c.order {
		if existing == t {
			return fmt.Errorf("chain order already contains %s", t)
		}
	}

	c.order = append(c.order, t)

	return nil
}

// SetEnabled toggles a stage without touching its state.
func (c *Chain) SetEnabled(t EffectType, enabled bool) error {
	if !t.valid() {
		return fmt.Errorf("unknown effect type: %d", int(t))
	}

	c.enabled[t] = enabled

	return nil
}

// Enabled reports whether a stage is enabled. Unknown types report false.
func (c *Chain) Enabled(t EffectType) bool {
	return t.valid() && c.enabled[t]
}

// ProcessInPlace runs the enabled stages over buf in order.
func (c *Chain) ProcessInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}

	for _, t := range c.order {
		if !c.enabled[t] {
			continue
		}

		switch t {
		case EffectEqualizer:
			c.equalizer.ProcessInPlace(buf)
		case EffectCompressor:
			c.compressor.ProcessInPlace(buf)
		case EffectReverb:
			c.reverb.ProcessInPlace(buf)
		case EffectLimiter:
			c.limiter.ProcessInPlace(buf)
		case EffectNoiseGate:
			c.gate.ProcessInPlace(buf)
		case EffectAGC:
			c.agc.ProcessInPlace(buf)
		}
	}
}

// Reset clears the internal state of every stage, including stages not
// currently in the order.
func (c *Chain) Reset() {
	c.equalizer.Reset()
	c.compressor.Reset()
	c.reverb.Reset()
	c.limiter.Reset()
	c.gate.Reset()
	c.agc.Reset()
}

// --- Typed settings ---

// SetEqualizerSettings applies a gain bundle to the equalizer stage.
// With the standard three-band layout in place the gains are updated
// click-free; a custom band layout is replaced by the standard one.
func (c *Chain) SetEqualizerSettings(s EqualizerSettings) error {
	if c.equalizer.NumBands() == 3 {
		return c.equalizer.ApplySettings(s)
	}

	if err := s.Validate(); err != nil {
		return err
	}

	return c.equalizer.SetBands(effects.ThreeBandLayout(s.LowGainDB, s.MidGainDB, s.HighGainDB))
}

// EqualizerSettings returns the equalizer stage's current gain bundle.
func (c *Chain) EqualizerSettings() EqualizerSettings {
	return c.equalizer.Settings()
}

// SetCompressorSettings applies a validated bundle to the compressor
// stage. On a validation error the stage is left untouched.
func (c *Chain) SetCompressorSettings(s CompressorSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := c.compressor.SetThreshold(s.ThresholdDB); err != nil {
		return err
	}

	if err := c.compressor.SetRatio(s.Ratio); err != nil {
		return err
	}

	if err := c.compressor.SetAttack(s.AttackMs); err != nil {
		return err
	}

	if err := c.compressor.SetRelease(s.ReleaseMs); err != nil {
		return err
	}

	return c.compressor.SetMakeupGain(s.MakeupGainDB)
}

// CompressorSettings returns the compressor stage's current bundle.
func (c *Chain) CompressorSettings() CompressorSettings {
	return CompressorSettings{
		ThresholdDB:  c.compressor.Threshold(),
		Ratio:        c.compressor.Ratio(),
		AttackMs:     c.compressor.Attack(),
		ReleaseMs:    c.compressor.Release(),
		MakeupGainDB: c.compressor.MakeupGain(),
	}
}

// SetReverbSettings applies a validated bundle to the reverb stage.
func (c *Chain) SetReverbSettings(s ReverbSettings) error {
	return c.reverb.ApplySettings(s)
}

// ReverbSettings returns the reverb stage's current bundle.
func (c *Chain) ReverbSettings() ReverbSettings {
	return c.reverb.Settings()
}

// SetGateSettings applies a validated bundle to the noise gate stage.
// On a validation error the stage is left untouched.
func (c *Chain) SetGateSettings(s GateSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := c.gate.SetThreshold(s.Threshold); err != nil {
		return err
	}

	if err := c.gate.SetRatio(s.Ratio); err != nil {
		return err
	}

	if err := c.gate.SetAttack(s.AttackMs); err != nil {
		return err
	}

	return c.gate.SetRelease(s.ReleaseMs)
}

// GateSettings returns the noise gate stage's current bundle.
func (c *Chain) GateSettings() GateSettings {
	return GateSettings{
		Threshold: c.gate.Threshold(),
		Ratio:     c.gate.Ratio(),
		AttackMs:  c.gate.Attack(),
		ReleaseMs: c.gate.Release(),
	}
}

// SetAGCSettings applies a validated bundle to the AGC stage.
// On a validation error the stage is left untouched.
func (c *Chain) SetAGCSettings(s AGCSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := c.agc.SetTargetLevel(s.TargetLevel); err != nil {
		return err
	}

	if err := c.agc.SetMaxGain(s.MaxGain); err != nil {
		return err
	}

	if err := c.agc.SetAttack(s.AttackMs); err != nil {
		return err
	}

	return c.agc.SetRelease(s.ReleaseMs)
}

// AGCSettings returns the AGC stage's current bundle.
func (c *Chain) AGCSettings() AGCSettings {
	return AGCSettings{
		TargetLevel: c.agc.TargetLevel(),
		MaxGain:     c.agc.MaxGain(),
		AttackMs:    c.agc.Attack(),
		ReleaseMs:   c.agc.Release(),
	}
}

// --- Stage access ---

// Equalizer returns the equalizer stage for direct inspection, for
// example to read its magnitude response.
func (c *Chain) Equalizer() *effects.Equalizer { return c.equalizer }

// Compressor returns the compressor stage.
func (c *Chain) Compressor() *dynamics.Compressor { return c.compressor }

// Reverb returns the reverb stage.
func (c *Chain) Reverb() *effects.Reverb { return c.reverb }

// Limiter returns the limiter stage.
func (c *Chain) Limiter() *dynamics.Limiter { return c.limiter }

// NoiseGate returns the noise gate stage.
func (c *Chain) NoiseGate() *dynamics.NoiseGate { return c.gate }

// AGC returns the automatic gain control stage.
func (c *Chain) AGC() *dynamics.AGC { return c.agc }
