package biquad

// State holds the direct-form-I history of one Section: the last two input
// samples and the last two output samples. It is owned exclusively by one
// Section and is never reset implicitly between buffers.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// Section is a single stateful biquad stage. The history persists across
// ProcessSample/ProcessBlock calls so long signals can be filtered buffer by
// buffer without discontinuities.
type Section struct {
	coeffs Coefficients

	x1, x2 float64
	y1, y2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zeroed history.
func NewSection(c Coefficients) *Section {
	return &Section{coeffs: c}
}

// ProcessSample filters one input sample and returns the output, updating
// the input/output history afterwards.
func (s *Section) ProcessSample(x float64) float64 {
	c := &s.coeffs
	y := c.B0*x + c.B1*s.x1 + c.B2*s.x2 - c.A1*s.y1 - c.A2*s.y2

	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.coeffs.B0, s.coeffs.B1, s.coeffs.B2
	a1, a2 := s.coeffs.A1, s.coeffs.A2
	x1, x2 := s.x1, s.x2
	y1, y2 := s.y1, s.y2

	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2 = x1
		x1 = x
		y2 = y1
		y1 = y
		buf[i] = y
	}

	s.x1, s.x2 = x1, x2
	s.y1, s.y2 = y1, y2
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(dst) != len(src) {
		return
	}

	b0, b1, b2 := s.coeffs.B0, s.coeffs.B1, s.coeffs.B2
	a1, a2 := s.coeffs.A1, s.coeffs.A2
	x1, x2 := s.x1, s.x2
	y1, y2 := s.y1, s.y2

	for i, x := range src {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2 = x1
		x1 = x
		y2 = y1
		y1 = y
		dst[i] = y
	}

	s.x1, s.x2 = x1, x2
	s.y1, s.y2 = y1, y2
}

// SetCoefficients replaces the coefficient set. The history is preserved so
// coefficients can change between buffers of a running signal without
// re-priming the filter.
func (s *Section) SetCoefficients(c Coefficients) {
	s.coeffs = c
}

// Coefficients returns the current coefficient set.
func (s *Section) Coefficients() Coefficients {
	return s.coeffs
}

// Reset clears the input/output history to zero.
func (s *Section) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns a snapshot of the current history.
func (s *Section) State() State {
	return State{X1: s.x1, X2: s.x2, Y1: s.y1, Y2: s.y2}
}

// SetState restores a previously saved history snapshot.
func (s *Section) SetState(st State) {
	s.x1, s.x2 = st.X1, st.X2
	s.y1, s.y2 = st.Y1, st.Y2
}
