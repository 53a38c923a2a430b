package effectchain

import (
	"fmt"
	"sort"

	"github.com/vocalix/vocalfx/dsp/effects"
	"github.com/vocalix/vocalfx/dsp/filter/design"
)

// PresetSettings bundles the per-stage settings a general preset applies.
type PresetSettings struct {
	Equalizer  EqualizerSettings
	Compressor CompressorSettings
	Reverb     ReverbSettings
}

// generalPresets maps preset names to full settings bundles. The limiter
// is fixed and the gate/AGC keep their stage defaults, so a bundle covers
// the three tunable stages of the default order.
var generalPresets = map[string]PresetSettings{
	"natural": {
		Equalizer:  EqualizerSettings{LowGainDB: 1, MidGainDB: 0, HighGainDB: 1},
		Compressor: CompressorSettings{ThresholdDB: -18, Ratio: 2.5, AttackMs: 10, ReleaseMs: 120, MakeupGainDB: 2},
		Reverb:     ReverbSettings{RoomSize: 0.3, Damping: 0.5, WetLevel: 0.15, DryLevel: 0.85, Width: 1.0},
	},
	"warm": {
		Equalizer:  EqualizerSettings{LowGainDB: 4, MidGainDB: 1, HighGainDB: -1},
		Compressor: CompressorSettings{ThresholdDB: -20, Ratio: 3, AttackMs: 15, ReleaseMs: 180, MakeupGainDB: 3},
		Reverb:     ReverbSettings{RoomSize: 0.5, Damping: 0.7, WetLevel: 0.2, DryLevel: 0.8, Width: 1.0},
	},
	"bright": {
		Equalizer:  EqualizerSettings{LowGainDB: -1, MidGainDB: 0, HighGainDB: 5},
		Compressor: CompressorSettings{ThresholdDB: -18, Ratio: 2.5, AttackMs: 5, ReleaseMs: 80, MakeupGainDB: 2},
		Reverb:     ReverbSettings{RoomSize: 0.4, Damping: 0.2, WetLevel: 0.18, DryLevel: 0.82, Width: 1.0},
	},
	"radio": {
		Equalizer:  EqualizerSettings{LowGainDB: -5, MidGainDB: 3, HighGainDB: -2},
		Compressor: CompressorSettings{ThresholdDB: -24, Ratio: 6, AttackMs: 3, ReleaseMs: 60, MakeupGainDB: 7},
		Reverb:     ReverbSettings{RoomSize: 0.15, Damping: 0.9, WetLevel: 0.03, DryLevel: 0.97, Width: 0.7},
	},
	"studio": {
		Equalizer:  EqualizerSettings{LowGainDB: 2, MidGainDB: -1, HighGainDB: 3},
		Compressor: CompressorSettings{ThresholdDB: -20, Ratio: 4, AttackMs: 8, ReleaseMs: 140, MakeupGainDB: 4},
		Reverb:     ReverbSettings{RoomSize: 0.6, Damping: 0.4, WetLevel: 0.25, DryLevel: 0.75, Width: 1.0},
	},
}

// eqBandPresets maps preset names to full equalizer band layouts. These
// replace the standard three-band layout on the equalizer stage and leave
// every other stage alone.
var eqBandPresets = map[string][]effects.EQBand{
	// Close-mic studio takes: rumble cut, proximity trim, mud dip,
	// presence, air.
	"vocalRecording": {
		{Kind: design.KindHighpass, Frequency: 80},
		{Kind: design.KindLowShelf, Frequency: 150, GainDB: -2, Q: 1.0},
		{Kind: design.KindPeaking, Frequency: 400, GainDB: -1.5, Q: 1.2},
		{Kind: design.KindPeaking, Frequency: 3000, GainDB: 2.5, Q: 1.0},
		{Kind: design.KindHighShelf, Frequency: 10000, GainDB: 3, Q: 1.0},
	},
	// Stage vocals: steeper low cut, mains-hum notch, boom dip,
	// cut-through boost, hiss guard.
	"livePerformance": {
		{Kind: design.KindHighpass, Frequency: 100},
		{Kind: design.KindNotch, Frequency: 60, Q: 12},
		{Kind: design.KindPeaking, Frequency: 250, GainDB: -2, Q: 1.4},
		{Kind: design.KindPeaking, Frequency: 4000, GainDB: 3, Q: 1.2},
		{Kind: design.KindLowpass, Frequency: 12000},
	},
	// Practice playback: mild shaping that keeps the voice honest while
	// making articulation easy to hear.
	"vocalTraining": {
		{Kind: design.KindHighpass, Frequency: 70},
		{Kind: design.KindPeaking, Frequency: 300, GainDB: 1.5, Q: 1.0},
		{Kind: design.KindPeaking, Frequency: 1000, GainDB: 1, Q: 1.5},
		{Kind: design.KindPeaking, Frequency: 5000, GainDB: 2, Q: 1.0},
		{Kind: design.KindHighShelf, Frequency: 8000, GainDB: 1.5, Q: 1.0},
	},
}

// ApplyPreset configures the chain from a named preset.
//
// General presets apply their equalizer, compressor, and reverb bundles
// and enable every stage. EQ-band presets replace the equalizer's band
// layout, enable the equalizer, and leave the other stages alone. An
// unknown name is an error and changes nothing.
func (c *Chain) ApplyPreset(name string) error {
	if bands, ok := eqBandPresets[name]; ok {
		if err := c.equalizer.SetBands(bands); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}

		c.enabled[EffectEqualizer] = true

		return nil
	}

	s, ok := generalPresets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %q", name)
	}

	if err := c.SetEqualizerSettings(s.Equalizer); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}

	if err := c.SetCompressorSettings(s.Compressor); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}

	if err := c.SetReverbSettings(s.Reverb); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}

	for t := range c.enabled {
		c.enabled[t] = true
	}

	return nil
}

// PresetNames returns every preset name, general and EQ-band, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(generalPresets)+len(eqBandPresets))
	for name := range generalPresets {
		names = append(names, name)
	}

	for name := range eqBandPresets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// LookupPreset returns the settings bundle of a general preset.
func LookupPreset(name string) (PresetSettings, bool) {
	s, ok := generalPresets[name]
	return s, ok
}

// LookupEQBandPreset returns a copy of an EQ-band preset's band layout.
func LookupEQBandPreset(name string) ([]effects.EQBand, bool) {
	bands, ok := eqBandPresets[name]
	if !ok {
		return nil, false
	}

	return append([]effects.EQBand(nil), bands...), true
}
