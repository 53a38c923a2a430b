package effectchain

// EffectType identifies one stage of the chain. The set is fixed: the
// chain owns exactly one instance of each type and dispatches on the tag,
// so adding an effect means adding a type here and a case in the chain.
type EffectType int

const (
	// EffectEqualizer is the multi-band tone shaping stage.
	EffectEqualizer EffectType = iota
	// EffectCompressor is the downward dynamics compression stage.
	EffectCompressor
	// EffectReverb is the room simulation stage.
	EffectReverb
	// EffectLimiter is the fixed output peak limiter.
	EffectLimiter
	// EffectNoiseGate is the low-level noise gating stage.
	EffectNoiseGate
	// EffectAGC is the automatic gain control stage.
	EffectAGC

	numEffectTypes = int(EffectAGC) + 1
)

// String returns the effect name used in errors and tooling output.
func (t EffectType) String() string {
	switch t {
	case EffectEqualizer:
		return "equalizer"
	case EffectCompressor:
		return "compressor"
	case EffectReverb:
		return "reverb"
	case EffectLimiter:
		return "limiter"
	case EffectNoiseGate:
		return "noise-gate"
	case EffectAGC:
		return "agc"
	default:
		return "unknown"
	}
}

func (t EffectType) valid() bool {
	return t >= 0 && int(t) < numEffectTypes
}
