// Package dynamics provides level-dependent gain processors for vocal audio.
//
// Included processors:
//   - Compressor: dB-domain downward compressor with make-up gain.
//   - NoiseGate: attenuates signal below a linear threshold by a power curve.
//   - Limiter: fixed-threshold peak limiter with fast time constants.
//   - AGC: automatic gain control steering level toward a target with
//     asymmetric gain smoothing.
//   - DeEsser: split-band sibilance reducer compressing only the high band.
//
// All processors share the [EnvelopeFollower] primitive: a first-order
// peak follower with separate attack and release time constants. Every
// processor is mono and single-threaded; parameter changes are expected
// between buffer calls, not concurrently with one.
package dynamics
