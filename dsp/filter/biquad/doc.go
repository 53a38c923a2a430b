// Package biquad implements second-order IIR filter sections and cascades.
//
// A Section holds one normalized coefficient set plus direct-form-I input and
// output history, so filtering is continuous across buffer boundaries. Chain
// cascades independent sections for multi-band and higher-order filters.
// Frequency responses are evaluated with genuine complex arithmetic at
// z = e^{-jw}.
package biquad
