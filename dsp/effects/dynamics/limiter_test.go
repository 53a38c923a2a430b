package dynamics

import (
	"math"
	"testing"

	"github.com/vocalix/vocalfx/internal/testutil"
)

// TestNewLimiter verifies constructor validation and the fixed parameters.
func TestNewLimiter(t *testing.T) {
	if _, err := NewLimiter(0); err == nil {
		t.Error("NewLimiter(0) expected error")
	}

	if _, err := NewLimiter(math.Inf(1)); err == nil {
		t.Error("NewLimiter(+Inf) expected error")
	}

	l, err := NewLimiter(44100)
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}

	if l.Threshold() != limiterThreshold {
		t.Errorf("Threshold() = %v, want %v", l.Threshold(), limiterThreshold)
	}

	if l.Attack() != limiterAttackMs {
		t.Errorf("Attack() = %v, want %v", l.Attack(), limiterAttackMs)
	}

	if l.Release() != limiterReleaseMs {
		t.Errorf("Release() = %v, want %v", l.Release(), limiterReleaseMs)
	}
}

// TestLimiterTransparentBelowThreshold verifies bit-exact passthrough for
// signal that never drives the envelope over the threshold.
func TestLimiterTransparentBelowThreshold(t *testing.T) {
	l, _ := NewLimiter(44100)

	for i := range 4410 {
		input := 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
		if out := l.ProcessSample(input); out != input {
			t.Fatalf("sample %d: ProcessSample(%v) = %v, want unchanged", i, input, out)
		}
	}
}

// TestLimiterHoldsSettledPeakAtThreshold verifies the threshold/envelope gain
// law once the envelope has settled on a loud signal.
func TestLimiterHoldsSettledPeakAtThreshold(t *testing.T) {
	l, _ := NewLimiter(44100)

	buf := testutil.DC(2.0, 4410)
	l.ProcessInPlace(buf)

	// After the 1 ms attack transient the envelope has converged to the
	// input level and every sample is pinned to the threshold.
	peak := testutil.MaxAbs(buf[1000:])
	if math.Abs(peak-limiterThreshold) > 1e-6 {
		t.Errorf("settled peak = %v, want %v", peak, limiterThreshold)
	}

	// The transient itself is bounded by the raw input peak.
	for i, v := range buf[:1000] {
		if math.Abs(v) > 2.0 {
			t.Fatalf("sample %d: transient %v exceeds input peak", i, v)
		}
	}
}

// TestLimiterBoundsLoudSine verifies the limiting guarantee on a 2.0-peak
// sine. The envelope ripples between rectified peaks, so the settled output
// may exceed the threshold only by the follower's tracking error.
func TestLimiterBoundsLoudSine(t *testing.T) {
	l, _ := NewLimiter(44100)

	buf := testutil.DeterministicSine(440, 44100, 2.0, 44100)
	l.ProcessInPlace(buf)

	peak := testutil.MaxAbs(buf[500:])

	const settlingTolerance = 0.3

	if peak > limiterThreshold+settlingTolerance {
		t.Errorf("settled peak = %v, want <= %v", peak, limiterThreshold+settlingTolerance)
	}

	// Well below the raw 2.0 peak in any case.
	if peak >= 1.5 {
		t.Errorf("settled peak = %v, limiter had no effect", peak)
	}
}

// TestLimiterReset verifies reset clears the detector.
func TestLimiterReset(t *testing.T) {
	l, _ := NewLimiter(44100)

	for range 100 {
		l.ProcessSample(1.5)
	}

	if l.Envelope() == 0 {
		t.Error("envelope should be non-zero after processing")
	}

	l.Reset()

	if l.Envelope() != 0 {
		t.Errorf("Envelope() = %v after Reset(), want 0", l.Envelope())
	}
}
