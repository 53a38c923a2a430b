// Package delay provides fixed-length circular delay lines.
//
// A Line owns its buffer and a single read/write index, so each filter that
// embeds one (reverb combs, all-passes) has exclusive state with no aliasing
// between instances.
package delay

import (
	"fmt"
	"math"

	"github.com/vocalix/vocalfx/dsp/core"
)

// referenceSampleRate is the rate the classic delay tunings were calibrated at.
const referenceSampleRate = 44100.0

// Line is a circular delay line of fixed length. The length is chosen at
// construction and never changes for the lifetime of the instance.
type Line struct {
	buffer []float64
	index  int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// NewScaled returns a delay line whose length is a 44.1 kHz reference length
// scaled by sampleRate/44100, with a minimum of one sample. Delay tunings
// published for 44.1 kHz keep their duration at other sample rates.
func NewScaled(refSize int, sampleRate float64) (*Line, error) {
	if refSize <= 0 {
		return nil, fmt.Errorf("delay reference size must be > 0: %d", refSize)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be positive and finite: %f", sampleRate)
	}

	size := int(math.Round(float64(refSize) * sampleRate / referenceSampleRate))
	if size < 1 {
		size = 1
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the delay length in samples.
func (l *Line) Len() int {
	return len(l.buffer)
}

// Tap returns the oldest sample, the one the next Push will overwrite.
func (l *Line) Tap() float64 {
	return l.buffer[l.index]
}

// Push writes one sample at the current index and advances it.
func (l *Line) Push(sample float64) {
	l.buffer[l.index] = sample
	l.index++
	if l.index >= len(l.buffer) {
		l.index = 0
	}
}

// Process pushes the input sample and returns the sample it displaced,
// i.e. the input delayed by Len() samples.
func (l *Line) Process(sample float64) float64 {
	out := l.buffer[l.index]
	l.buffer[l.index] = sample
	l.index++
	if l.index >= len(l.buffer) {
		l.index = 0
	}
	return out
}

// Reset clears the buffer and rewinds the index.
func (l *Line) Reset() {
	core.Zero(l.buffer)
	l.index = 0
}
