package effectchain

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/effects"
)

// EqualizerSettings configures the three-band equalizer stage.
type EqualizerSettings = effects.EqualizerSettings

// ReverbSettings configures the reverb stage.
type ReverbSettings = effects.ReverbSettings

// Validation ranges. These match the stage setters in the dynamics
// package, so a bundle that passes Validate always applies cleanly.
const (
	minCompressorRatio = 1.0
	maxCompressorRatio = 100.0

	minGateRatio = 0.1
	maxGateRatio = 100.0

	minAGCTargetLevel = 0.01
	maxAGCTargetLevel = 1.0
	minAGCMaxGain     = 1.0
	maxAGCMaxGain     = 100.0

	minAttackMs  = 0.1
	maxAttackMs  = 1000.0
	minReleaseMs = 1.0
	maxReleaseMs = 5000.0
)

// CompressorSettings configures the compressor stage as one bundle.
type CompressorSettings struct {
	ThresholdDB  float64
	Ratio        float64
	AttackMs     float64
	ReleaseMs    float64
	MakeupGainDB float64
}

// Validate reports the first out-of-range field.
func (s CompressorSettings) Validate() error {
	if math.IsNaN(s.ThresholdDB) || math.IsInf(s.ThresholdDB, 0) {
		return fmt.Errorf("compressor threshold must be finite: %f", s.ThresholdDB)
	}

	if math.IsNaN(s.MakeupGainDB) || math.IsInf(s.MakeupGainDB, 0) {
		return fmt.Errorf("compressor makeup gain must be finite: %f", s.MakeupGainDB)
	}

	return validateRanges([]rangedField{
		{"compressor ratio", s.Ratio, minCompressorRatio, maxCompressorRatio},
		{"compressor attack", s.AttackMs, minAttackMs, maxAttackMs},
		{"compressor release", s.ReleaseMs, minReleaseMs, maxReleaseMs},
	})
}

// GateSettings configures the noise gate stage as one bundle.
// Threshold is a linear amplitude, not dB.
type GateSettings struct {
	Threshold float64
	Ratio     float64
	AttackMs  float64
	ReleaseMs float64
}

// Validate reports the first out-of-range field.
func (s GateSettings) Validate() error {
	if s.Threshold <= 0 || math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return fmt.Errorf("gate threshold must be positive and finite: %f", s.Threshold)
	}

	return validateRanges([]rangedField{
		{"gate ratio", s.Ratio, minGateRatio, maxGateRatio},
		{"gate attack", s.AttackMs, minAttackMs, maxAttackMs},
		{"gate release", s.ReleaseMs, minReleaseMs, maxReleaseMs},
	})
}

// AGCSettings configures the automatic gain control stage as one bundle.
type AGCSettings struct {
	TargetLevel float64
	MaxGain     float64
	AttackMs    float64
	ReleaseMs   float64
}

// Validate reports the first out-of-range field.
func (s AGCSettings) Validate() error {
	return validateRanges([]rangedField{
		{"agc target level", s.TargetLevel, minAGCTargetLevel, maxAGCTargetLevel},
		{"agc max gain", s.MaxGain, minAGCMaxGain, maxAGCMaxGain},
		{"agc attack", s.AttackMs, minAttackMs, maxAttackMs},
		{"agc release", s.ReleaseMs, minReleaseMs, maxReleaseMs},
	})
}

type rangedField struct {
	name     string
	value    float64
	min, max float64
}

func validateRanges(fields []rangedField) error {
	for _, f := range fields {
		if f.value < f.min || f.value > f.max || math.IsNaN(f.value) {
			return fmt.Errorf("%s must be in [%f, %f]: %f", f.name, f.min, f.max, f.value)
		}
	}

	return nil
}
