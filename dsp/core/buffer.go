package core

// EnsureLen returns a slice of length n backed by buf when its capacity
// allows, so per-call scratch buffers stop allocating once they reach
// steady state. Contents are unspecified; call Zero before accumulating.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets every value in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
