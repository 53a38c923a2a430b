package design

import (
	"math"

	"github.com/vocalix/vocalfx/dsp/filter/biquad"
)

type cacheKey struct {
	kind   Kind
	freqHz int64
}

// Cache memoizes designed coefficient sets keyed by (Kind, frequency rounded
// to the nearest Hz). A miss is not an error: the design function runs
// synchronously and its result is stored for subsequent lookups.
//
// The key deliberately ignores gain and Q, so the cache is only suitable for
// designs whose remaining parameters are fixed for the session (the
// Butterworth cutoffs of the voice pipeline). Gain-swept designs such as
// equalizer bands are recomputed instead of cached.
//
// Cache is not synchronized. One engine owns one cache and drives it from
// one goroutine at a time.
type Cache struct {
	entries map[cacheKey]biquad.Coefficients
}

// NewCache returns an empty coefficient cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]biquad.Coefficients)}
}

// GetOrDesign returns the cached coefficients for (kind, freq), invoking
// designFn and storing its result on the first lookup. Repeated lookups
// with the same key return identical values without re-designing.
func (c *Cache) GetOrDesign(kind Kind, freq float64, designFn func() biquad.Coefficients) biquad.Coefficients {
	key := cacheKey{kind: kind, freqHz: roundHz(freq)}
	if coeffs, ok := c.entries[key]; ok {
		return coeffs
	}

	coeffs := designFn()
	c.entries[key] = coeffs
	return coeffs
}

// Lookup reports the cached coefficients for (kind, freq) without designing.
func (c *Cache) Lookup(kind Kind, freq float64) (biquad.Coefficients, bool) {
	coeffs, ok := c.entries[cacheKey{kind: kind, freqHz: roundHz(freq)}]
	return coeffs, ok
}

// Len returns the number of cached coefficient sets.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Reset discards all cached entries.
func (c *Cache) Reset() {
	clear(c.entries)
}

func roundHz(freq float64) int64 {
	return int64(math.Round(freq))
}
