//nolint:funlen,gocognit,cyclop
package effects

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/window"
)

const (
	defaultDenoiseFrameSize = 1024
	defaultDenoiseHopSize   = 256
	minDenoiseFrameSize     = 64
	defaultDenoiseReduction = 1.5
	defaultDenoiseFloorGain = 0.05
	maxDenoiseReduction     = 10.0
	denoiseNormFloor        = 1e-12

	// Per-frame tracking rates for the noise-floor estimate. The estimate
	// rises slowly when a bin is louder than the floor (speech must not
	// inflate it) and falls fast when the bin is quieter (pauses reveal
	// the true floor).
	denoiseFloorRise = 0.002
	denoiseFloorFall = 0.2
)

// SpectralDenoiser removes stationary background noise by spectral
// subtraction.
//
// The input is analyzed with an overlap-add STFT (periodic Hann window).
// Each bin keeps an adaptive noise-floor magnitude estimate; the scaled
// floor is subtracted from the bin magnitude and the bin is attenuated
// accordingly, with phase preserved. A spectral floor keeps a small residual
// in fully subtracted bins to avoid musical-noise artifacts.
//
// The first analysis frame seeds the floor estimate, so streams should open
// with a short stretch of representative background. The estimate persists
// across Process calls.
//
// This processor is mono, buffer-oriented, and not thread-safe.
type SpectralDenoiser struct {
	frameSize int
	hopSize   int
	reduction float64
	floorGain float64

	plan *algofft.Plan[complex128]

	windowCoeffs []float64

	spectrum  []complex128
	timeFrame []complex128
	binRe     []float64
	binIm     []float64
	binMag    []float64

	// Overlap-add scratch, reused across calls.
	wet  []float64
	norm []float64

	noiseFloor []float64
	primed     bool
}

// NewSpectralDenoiser creates a spectral denoiser with practical defaults
// (1024-sample frames, 256-sample hop, subtraction factor 1.5, spectral
// floor 0.05).
func NewSpectralDenoiser() (*SpectralDenoiser, error) {
	s := &SpectralDenoiser{
		frameSize: defaultDenoiseFrameSize,
		hopSize:   defaultDenoiseHopSize,
		reduction: defaultDenoiseReduction,
		floorGain: defaultDenoiseFloorGain,
	}

	err := s.rebuildState()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// --- Getters ---

// FrameSize returns FFT frame size.
func (s *SpectralDenoiser) FrameSize() int { return s.frameSize }

// HopSize returns STFT hop size in samples.
func (s *SpectralDenoiser) HopSize() int { return s.hopSize }

// Reduction returns the noise-floor subtraction factor.
func (s *SpectralDenoiser) Reduction() float64 { return s.reduction }

// FloorGain returns the minimum per-bin gain.
func (s *SpectralDenoiser) FloorGain() float64 { return s.floorGain }

// SetFrameSize updates FFT frame size. size must be a power of two and
// >= 64. The noise-floor estimate is cleared and relearned.
func (s *SpectralDenoiser) SetFrameSize(size int) error {
	if size < minDenoiseFrameSize || !isPowerOfTwo(size) {
		return fmt.Errorf("spectral denoiser frame size must be power-of-two and >= %d: %d",
			minDenoiseFrameSize, size)
	}

	s.frameSize = size
	if s.hopSize >= s.frameSize {
		s.hopSize = max(s.frameSize/4, 1)
	}

	return s.rebuildState()
}

// SetHopSize updates STFT hop size. hop must be in [1, frameSize).
func (s *SpectralDenoiser) SetHopSize(hop int) error {
	if hop <= 0 || hop >= s.frameSize {
		return fmt.Errorf("spectral denoiser hop size must be in [1, %d): %d", s.frameSize, hop)
	}

	s.hopSize = hop

	return nil
}

// SetReduction updates the noise-floor subtraction factor. Values above 1
// over-subtract for a deeper cut at the cost of more artifacts.
func (s *SpectralDenoiser) SetReduction(factor float64) error {
	if factor < 0 || factor > maxDenoiseReduction || math.IsNaN(factor) {
		return fmt.Errorf("spectral denoiser reduction must be in [0, %f]: %f",
			maxDenoiseReduction, factor)
	}

	s.reduction = factor

	return nil
}

// SetFloorGain updates the minimum per-bin gain in [0, 1].
func (s *SpectralDenoiser) SetFloorGain(gain float64) error {
	if gain < 0 || gain > 1 || math.IsNaN(gain) {
		return fmt.Errorf("spectral denoiser floor gain must be in [0, 1]: %f", gain)
	}

	s.floorGain = gain

	return nil
}

// Reset clears the learned noise floor.
func (s *SpectralDenoiser) Reset() {
	s.primed = false
	core.Zero(s.noiseFloor)
}

// Process applies spectral denoising and returns a new output slice.
// If processing fails, this returns a copy of input.
func (s *SpectralDenoiser) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out, err := s.ProcessWithError(input)
	if err != nil {
		fallback := make([]float64, len(input))
		copy(fallback, input)

		return fallback
	}

	return out
}

// ProcessWithError applies spectral denoising and returns errors.
func (s *SpectralDenoiser) ProcessWithError(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, nil
	}

	err := s.validate()
	if err != nil {
		return nil, err
	}

	hop := s.hopSize
	frameCount := 1 + (len(input)-1)/hop
	outLen := (frameCount-1)*hop + s.frameSize

	s.wet = core.EnsureLen(s.wet, outLen)
	s.norm = core.EnsureLen(s.norm, outLen)
	core.Zero(s.wet)
	core.Zero(s.norm)
	wet, norm := s.wet, s.norm

	half := s.frameSize / 2

	for frame := range frameCount {
		pos := frame * hop

		for i := range s.frameSize {
			x := 0.0

			idx := pos + i
			if idx < len(input) {
				x = input[idx]
			}

			s.spectrum[i] = complex(x*s.windowCoeffs[i], 0)
		}

		err := s.plan.Forward(s.spectrum, s.spectrum)
		if err != nil {
			return nil, fmt.Errorf("spectral denoiser: forward FFT failed: %w", err)
		}

		for k := 0; k <= half; k++ {
			s.binRe[k] = real(s.spectrum[k])
			s.binIm[k] = imag(s.spectrum[k])
		}

		vecmath.Magnitude(s.binMag, s.binRe, s.binIm)
		s.trackNoiseFloor()

		for k := 0; k <= half; k++ {
			mag := s.binMag[k]

			gain := 1.0
			if mag > 0 {
				gain = (mag - s.reduction*s.noiseFloor[k]) / mag
				if gain < s.floorGain {
					gain = s.floorGain
				}
			}

			s.spectrum[k] = complex(s.binRe[k]*gain, s.binIm[k]*gain)
		}

		s.spectrum[0] = complex(real(s.spectrum[0]), 0)

		s.spectrum[half] = complex(real(s.spectrum[half]), 0)
		for k := 1; k < half; k++ {
			v := s.spectrum[k]
			s.spectrum[s.frameSize-k] = complex(real(v), -imag(v))
		}

		err = s.plan.Inverse(s.timeFrame, s.spectrum)
		if err != nil {
			return nil, fmt.Errorf("spectral denoiser: inverse FFT failed: %w", err)
		}

		for i := range s.frameSize {
			idx := pos + i
			w := s.windowCoeffs[i]
			wet[idx] += real(s.timeFrame[i]) * w
			norm[idx] += w * w
		}
	}

	out := make([]float64, len(input))
	for i := range out {
		sample := wet[i]
		if norm[i] > denoiseNormFloor {
			sample /= norm[i]
		}

		out[i] = sample
	}

	return out, nil
}

// ProcessInPlace applies spectral denoising to buf in place.
func (s *SpectralDenoiser) ProcessInPlace(buf []float64) {
	out := s.Process(buf)
	copy(buf, out)
}

// ProcessInPlaceWithError applies spectral denoising in place and returns errors.
func (s *SpectralDenoiser) ProcessInPlaceWithError(buf []float64) error {
	out, err := s.ProcessWithError(buf)
	if err != nil {
		return err
	}

	copy(buf, out)

	return nil
}

// trackNoiseFloor folds the current frame's bin magnitudes into the
// per-bin floor estimate.
func (s *SpectralDenoiser) trackNoiseFloor() {
	if !s.primed {
		copy(s.noiseFloor, s.binMag)
		s.primed = true

		return
	}

	for k, mag := range s.binMag {
		rate := denoiseFloorFall
		if mag > s.noiseFloor[k] {
			rate = denoiseFloorRise
		}

		s.noiseFloor[k] += rate * (mag - s.noiseFloor[k])
	}
}

func (s *SpectralDenoiser) validate() error {
	if s.frameSize < minDenoiseFrameSize || !isPowerOfTwo(s.frameSize) {
		return fmt.Errorf("spectral denoiser frame size must be power-of-two and >= %d: %d",
			minDenoiseFrameSize, s.frameSize)
	}

	if s.hopSize <= 0 || s.hopSize >= s.frameSize {
		return fmt.Errorf("spectral denoiser hop size must be in [1, %d): %d", s.frameSize, s.hopSize)
	}

	if s.plan == nil {
		return errors.New("spectral denoiser FFT plan is nil")
	}

	return nil
}

func (s *SpectralDenoiser) rebuildState() error {
	if s.frameSize < minDenoiseFrameSize || !isPowerOfTwo(s.frameSize) {
		return fmt.Errorf("spectral denoiser frame size must be power-of-two and >= %d: %d",
			minDenoiseFrameSize, s.frameSize)
	}

	if s.hopSize <= 0 || s.hopSize >= s.frameSize {
		return fmt.Errorf("spectral denoiser hop size must be in [1, %d): %d", s.frameSize, s.hopSize)
	}

	plan, err := algofft.NewPlan64(s.frameSize)
	if err != nil {
		return fmt.Errorf("spectral denoiser: failed to create FFT plan: %w", err)
	}

	s.plan = plan

	coeffs := window.Generate(window.TypeHann, s.frameSize, window.WithPeriodic())
	if len(coeffs) != s.frameSize {
		return fmt.Errorf("spectral denoiser: window generation failed for size %d", s.frameSize)
	}

	s.windowCoeffs = coeffs

	bins := s.frameSize/2 + 1

	s.spectrum = make([]complex128, s.frameSize)
	s.timeFrame = make([]complex128, s.frameSize)
	s.binRe = make([]float64, bins)
	s.binIm = make([]float64, bins)
	s.binMag = make([]float64, bins)
	s.noiseFloor = make([]float64, bins)
	s.primed = false

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
