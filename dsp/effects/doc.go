// Package effects provides the buffer-level audio effects used by the vocal
// processing chain: a multi-band equalizer, a Freeverb-style reverb, frame
// and spectral noise reduction, and the composed voice enhancement pipeline.
//
// Effects are mono, stateful, and preserve their internal state across
// buffer boundaries so that filtering stays continuous when audio arrives
// in callback-sized chunks. The time-domain processors run allocation-free
// in steady state; the spectral denoiser reuses its analysis scratch across
// calls but returns a freshly allocated output slice.
package effects
