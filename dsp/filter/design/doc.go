// Package design computes normalized biquad coefficients for the filter
// shapes used by the vocal processing chain: peaking bells, low/high
// shelves, second-order Butterworth low/high-pass, and a narrow notch.
//
// Designers are pure functions and perform no input validation: Q <= 0 or a
// frequency at or above Nyquist yields degenerate or unstable coefficients.
// Callers validate parameters before designing; the settings layer in
// dsp/effectchain does this for all user-facing knobs.
//
// Cache memoizes designed sets keyed by (Kind, rounded frequency) for the
// hot-path cutoffs that never change per session. It is not synchronized;
// instances follow the engine's single-writer discipline.
package design
