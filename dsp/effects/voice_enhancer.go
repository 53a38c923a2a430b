package effects

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/effects/dynamics"
	"github.com/vocalix/vocalfx/dsp/filter/biquad"
	"github.com/vocalix/vocalfx/dsp/filter/design"
)

// Voice pipeline tuning. The corner frequencies and gains target spoken and
// sung voice at conversational levels.
const (
	enhancerHighpassHz     = 80.0
	enhancerWarmthHz       = 200.0
	enhancerWarmthGainDB   = 2.0
	enhancerPresenceHz     = 3000.0
	enhancerPresenceGainDB = 3.0
	enhancerBandQ          = 1.0
	enhancerCompThreshold  = 0.7
	enhancerCompRatio      = 3.0
	enhancerLowpassHz      = 12000.0
)

// VoiceEnhancer is a fixed six-stage vocal conditioning pipeline:
//
//	highpass 80 Hz -> peaking +2 dB @ 200 Hz -> peaking +3 dB @ 3 kHz
//	-> de-esser (6 kHz) -> compressor (threshold 0.7, ratio 3:1)
//	-> lowpass 12 kHz
//
// The rumble highpass and the band-limit lowpass pull their coefficients
// through the shared design cache; the two tone bands have fixed gains and
// are designed directly.
//
// This processor is mono and not thread-safe.
type VoiceEnhancer struct {
	sampleRate float64

	highpass *biquad.Section
	warmth   *biquad.Section
	presence *biquad.Section
	deEsser  *dynamics.DeEsser
	comp     *dynamics.Compressor
	lowpass  *biquad.Section
}

// NewVoiceEnhancer creates the pipeline for the given sample rate. Cutoff
// coefficients are fetched through cache; a nil cache gets a private one.
func NewVoiceEnhancer(sampleRate float64, cache *design.Cache) (*VoiceEnhancer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("voice enhancer sample rate must be positive and finite: %f", sampleRate)
	}

	if enhancerLowpassHz >= sampleRate/2 {
		return nil, fmt.Errorf("voice enhancer sample rate too low for %g Hz lowpass: %f",
			enhancerLowpassHz, sampleRate)
	}

	if cache == nil {
		cache = design.NewCache()
	}

	deEsser, err := dynamics.NewDeEsser(sampleRate)
	if err != nil {
		return nil, err
	}

	comp, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	err = comp.SetThreshold(core.LinearToDB(enhancerCompThreshold))
	if err != nil {
		return nil, err
	}

	err = comp.SetRatio(enhancerCompRatio)
	if err != nil {
		return nil, err
	}

	highpassCoeffs := cache.GetOrDesign(design.KindHighpass, enhancerHighpassHz, func() biquad.Coefficients {
		return design.ButterworthHighpass(sampleRate, enhancerHighpassHz)
	})
	lowpassCoeffs := cache.GetOrDesign(design.KindLowpass, enhancerLowpassHz, func() biquad.Coefficients {
		return design.ButterworthLowpass(sampleRate, enhancerLowpassHz)
	})

	return &VoiceEnhancer{
		sampleRate: sampleRate,
		highpass:   biquad.NewSection(highpassCoeffs),
		warmth: biquad.NewSection(design.Peaking(
			sampleRate, enhancerWarmthHz, enhancerWarmthGainDB, enhancerBandQ)),
		presence: biquad.NewSection(design.Peaking(
			sampleRate, enhancerPresenceHz, enhancerPresenceGainDB, enhancerBandQ)),
		deEsser: deEsser,
		comp:    comp,
		lowpass: biquad.NewSection(lowpassCoeffs),
	}, nil
}

// SampleRate returns sample rate in Hz.
func (v *VoiceEnhancer) SampleRate() float64 { return v.sampleRate }

// ProcessSample runs one sample through all six stages.
func (v *VoiceEnhancer) ProcessSample(input float64) float64 {
	x := v.highpass.ProcessSample(input)
	x = v.warmth.ProcessSample(x)
	x = v.presence.ProcessSample(x)
	x = v.deEsser.ProcessSample(x)
	x = v.comp.ProcessSample(x)

	return v.lowpass.ProcessSample(x)
}

// ProcessInPlace applies the pipeline to buf, overwriting it.
func (v *VoiceEnhancer) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = v.ProcessSample(x)
	}
}

// Reset clears all filter and envelope state.
func (v *VoiceEnhancer) Reset() {
	v.highpass.Reset()
	v.warmth.Reset()
	v.presence.Reset()
	v.deEsser.Reset()
	v.comp.Reset()
	v.lowpass.Reset()
}
