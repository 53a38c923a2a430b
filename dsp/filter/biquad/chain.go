package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Each section keeps independent state, so a Chain models both higher-order
// filters and multi-band equalizer stacks.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	sections := make([]Section, len(coeffs))
	for i, c := range coeffs {
		sections[i] = Section{coeffs: c}
	}

	return &Chain{sections: sections, gain: cfg.gain}
}

// ProcessSample cascades input through all sections in order.
// If gain != 1, the input is scaled before the first section.
func (c *Chain) ProcessSample(x float64) float64 {
	y := x * c.gain
	for i := range c.sections {
		y = c.sections[i].ProcessSample(y)
	}
	return y
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i := range buf {
			buf[i] *= c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the current input gain applied before cascading.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain updates the input gain applied before cascading.
func (c *Chain) SetGain(g float64) { c.gain = g }

// UpdateCoefficients replaces the filter coefficients and gain.
//
// If the number of sections is unchanged the history of each section is
// preserved, so a running filter can be retuned without clicks. If the
// section count changes the sections are replaced and state starts from zero.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	if len(coeffs) == len(c.sections) {
		for i, cf := range coeffs {
			c.sections[i].SetCoefficients(cf)
		}
		return
	}

	sections := make([]Section, len(coeffs))
	for i, cf := range coeffs {
		sections[i] = Section{coeffs: cf}
	}
	c.sections = sections
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section histories.
func (c *Chain) State() []State {
	states := make([]State, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}
	return states
}

// SetState restores previously saved section histories.
// The slice length must match NumSections.
func (c *Chain) SetState(states []State) {
	if len(states) != len(c.sections) {
		return
	}
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
