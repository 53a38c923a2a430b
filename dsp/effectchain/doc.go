// Package effectchain composes the vocal effect stages into a single
// reorderable processing chain and wraps it in an Engine that owns the
// shared filter design cache.
//
// A Chain holds one instance of every stage type. The default order is
// equalizer, compressor, reverb, limiter; the noise gate and automatic
// gain control exist from construction but only run once appended to the
// order. Stages keep their internal state when disabled, so toggling a
// stage back on resumes from where it left off instead of clicking.
//
// Settings are applied as validated bundles: a typed setter checks the
// whole bundle first and only then touches the live stage, so a rejected
// update leaves the stage exactly as it was. Named presets work the same
// way through data tables.
package effectchain
