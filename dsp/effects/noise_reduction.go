package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultNoiseFrameSize      = 256
	defaultNoiseAdaptationRate = 0.05

	// noiseGateFloor is the minimum gain applied to any frame. Frames judged
	// to be pure noise are attenuated to this floor rather than muted, which
	// avoids audible pumping when the estimate is briefly wrong.
	noiseGateFloor = 0.1

	// noiseEnergyMargin is the factor by which a frame's energy must exceed
	// the tracked noise estimate before the frame is treated as signal.
	noiseEnergyMargin = 2.0

	maxNoiseFrameSize = 65536
)

// NoiseReducer is a frame-based noise gate with an adaptive noise floor.
//
// The input is split into fixed-size frames. Each frame's mean-square energy
// feeds a slow first-order tracker that converges on the background noise
// level. Frames whose energy clearly exceeds the tracked floor pass with a
// gain derived from the estimated signal-to-total ratio; everything else is
// attenuated to a small residual. Because only energy is inspected, the
// reducer is independent of the sample rate.
//
// State (the noise estimate) persists across calls, so a stream can be
// processed in consecutive buffers of any length.
type NoiseReducer struct {
	frameSize      int
	adaptationRate float64
	noiseEstimate  float64
}

// NewNoiseReducer creates a noise reducer with default settings
// (256-sample frames, adaptation rate 0.05).
func NewNoiseReducer() *NoiseReducer {
	return &NoiseReducer{
		frameSize:      defaultNoiseFrameSize,
		adaptationRate: defaultNoiseAdaptationRate,
	}
}

// SetFrameSize sets the analysis frame length in samples.
func (n *NoiseReducer) SetFrameSize(size int) error {
	if size <= 0 || size > maxNoiseFrameSize {
		return fmt.Errorf("noise reducer frame size must be in [1, %d]: %d", maxNoiseFrameSize, size)
	}

	n.frameSize = size
	return nil
}

// SetAdaptationRate sets how quickly the noise estimate tracks frame energy.
// Small values adapt slowly and ride out speech; values near 1 track almost
// instantly and treat everything as noise.
func (n *NoiseReducer) SetAdaptationRate(rate float64) error {
	if rate <= 0 || rate > 1 || math.IsNaN(rate) {
		return fmt.Errorf("noise reducer adaptation rate must be in (0, 1]: %f", rate)
	}

	n.adaptationRate = rate
	return nil
}

// --- Getters ---

// FrameSize returns the analysis frame length in samples.
func (n *NoiseReducer) FrameSize() int { return n.frameSize }

// AdaptationRate returns the noise tracker adaptation rate.
func (n *NoiseReducer) AdaptationRate() float64 { return n.adaptationRate }

// NoiseEstimate returns the current mean-square noise floor estimate.
func (n *NoiseReducer) NoiseEstimate() float64 { return n.noiseEstimate }

// ProcessInPlace applies noise reduction to buf, overwriting it.
//
// The buffer is processed in frames of FrameSize samples; a short final
// frame is handled like any other. A single uniform gain is applied per
// frame, so the output length always equals the input length.
func (n *NoiseReducer) ProcessInPlace(buf []float64) {
	for start := 0; start < len(buf); start += n.frameSize {
		end := start + n.frameSize
		if end > len(buf) {
			end = len(buf)
		}

		frame := buf[start:end]

		var sum float64
		for _, v := range frame {
			sum += v * v
		}
		energy := sum / float64(len(frame))

		n.noiseEstimate += n.adaptationRate * (energy - n.noiseEstimate)

		gain := noiseGateFloor
		if energy > noiseEnergyMargin*n.noiseEstimate {
			ratio := (energy - n.noiseEstimate) / energy
			if ratio < noiseGateFloor {
				ratio = noiseGateFloor
			}
			gain = mathSqrt(ratio)
		}

		vecmath.ScaleBlock(frame, frame, gain)
	}
}

// Reset clears the tracked noise floor.
func (n *NoiseReducer) Reset() {
	n.noiseEstimate = 0
}
