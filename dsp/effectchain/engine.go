package effectchain

import (
	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/effects"
	"github.com/vocalix/vocalfx/dsp/filter/design"
)

// Engine ties one audio session together: the sample rate, the shared
// filter design cache, the effect chain, and the voice pipeline built
// around them. There is no package-level state; parallel sessions get
// independent engines.
type Engine struct {
	sampleRate float64
	cache      *design.Cache
	chain      *Chain
	enhancer   *effects.VoiceEnhancer
}

// NewEngine creates an engine for the given sample rate with the chain at
// its defaults. Constructing the voice enhancer up front populates the
// shared design cache with its 80 Hz highpass and 12 kHz lowpass, so the
// first buffer through the voice pipeline does not pay for filter design.
//
// The 12 kHz lowpass puts the minimum workable sample rate just above
// 24 kHz; common rates like 44100 and 48000 are fine.
func NewEngine(sampleRate float64) (*Engine, error) {
	chain, err := NewChain(sampleRate)
	if err != nil {
		return nil, err
	}

	cache := design.NewCache()

	enhancer, err := effects.NewVoiceEnhancer(sampleRate, cache)
	if err != nil {
		return nil, err
	}

	return &Engine{
		sampleRate: sampleRate,
		cache:      cache,
		chain:      chain,
		enhancer:   enhancer,
	}, nil
}

// SampleRate returns the engine's sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Chain returns the engine's effect chain.
func (e *Engine) Chain() *Chain { return e.chain }

// Cache returns the shared filter design cache.
func (e *Engine) Cache() *design.Cache { return e.cache }

// VoiceEnhancer returns the engine's voice enhancement pipeline. It
// shares the engine's design cache.
func (e *Engine) VoiceEnhancer() *effects.VoiceEnhancer { return e.enhancer }

// NewNoiseReducer returns a fresh frame-based noise reducer. Each call
// returns an independent instance so separate streams do not share noise
// estimates.
func (e *Engine) NewNoiseReducer() *effects.NoiseReducer {
	return effects.NewNoiseReducer()
}

// NewSpectralDenoiser returns a fresh spectral subtraction denoiser.
func (e *Engine) NewSpectralDenoiser() (*effects.SpectralDenoiser, error) {
	return effects.NewSpectralDenoiser()
}

// ProcessInPlace sanitizes buf and runs it through the chain. Non-finite
// input samples are replaced with 0 before any stage sees them, keeping
// NaN out of filter state that would otherwise hold it forever. The
// number of replaced samples is returned.
func (e *Engine) ProcessInPlace(buf []float64) int {
	replaced := core.SanitizeBlock(buf)
	e.chain.ProcessInPlace(buf)

	return replaced
}

// Reset clears the chain and voice pipeline state.
func (e *Engine) Reset() {
	e.chain.Reset()
	e.enhancer.Reset()
}
