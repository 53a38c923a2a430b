package dynamics

import (
	"math"
	"testing"
)

// TestNewEnvelopeFollower verifies constructor validation.
func TestNewEnvelopeFollower(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		attackMs   float64
		releaseMs  float64
		wantErr    bool
	}{
		{"valid 44100", 44100, 10, 100, false},
		{"valid 48000", 48000, 0.1, 1, false},
		{"valid extremes", 96000, 1000, 5000, false},
		{"invalid zero rate", 0, 10, 100, true},
		{"invalid negative rate", -1, 10, 100, true},
		{"invalid NaN rate", math.NaN(), 10, 100, true},
		{"invalid attack too fast", 44100, 0.05, 100, true},
		{"invalid attack too slow", 44100, 1001, 100, true},
		{"invalid release too fast", 44100, 10, 0.5, true},
		{"invalid release too slow", 44100, 10, 5001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewEnvelopeFollower(tt.sampleRate, tt.attackMs, tt.releaseMs)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEnvelopeFollower() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && f == nil {
				t.Error("NewEnvelopeFollower() returned nil without error")
			}
		})
	}
}

// TestEnvelopeCoefficients verifies the time-constant conversion formula.
func TestEnvelopeCoefficients(t *testing.T) {
	f, err := NewEnvelopeFollower(44100, 10, 100)
	if err != nil {
		t.Fatalf("NewEnvelopeFollower() error = %v", err)
	}

	wantAttack := math.Exp(-1.0 / (0.010 * 44100))
	if math.Abs(f.attackCoeff-wantAttack) > 1e-15 {
		t.Errorf("attackCoeff = %v, want %v", f.attackCoeff, wantAttack)
	}

	wantRelease := math.Exp(-1.0 / (0.100 * 44100))
	if math.Abs(f.releaseCoeff-wantRelease) > 1e-15 {
		t.Errorf("releaseCoeff = %v, want %v", f.releaseCoeff, wantRelease)
	}

	// Both coefficients lie strictly inside (0, 1).
	if f.attackCoeff <= 0 || f.attackCoeff >= 1 {
		t.Errorf("attackCoeff = %v, want (0, 1)", f.attackCoeff)
	}

	if f.releaseCoeff <= 0 || f.releaseCoeff >= 1 {
		t.Errorf("releaseCoeff = %v, want (0, 1)", f.releaseCoeff)
	}
}

// TestEnvelopeRisesTowardLevel verifies attack-phase convergence.
func TestEnvelopeRisesTowardLevel(t *testing.T) {
	f, _ := NewEnvelopeFollower(44100, 1, 100)

	prev := 0.0
	for range 1000 {
		env := f.Process(1.0)
		if env < prev {
			t.Fatalf("envelope decreased from %v to %v on constant input", prev, env)
		}

		if env > 1.0 {
			t.Fatalf("envelope %v overshot the input level", env)
		}

		prev = env
	}

	// 1000 samples is about 23 attack time constants at 1 ms.
	if prev < 0.999 {
		t.Errorf("envelope = %v after settling, want close to 1", prev)
	}
}

// TestEnvelopeReleaseDecay verifies the exact exponential decay rate.
func TestEnvelopeReleaseDecay(t *testing.T) {
	f, _ := NewEnvelopeFollower(44100, 1, 100)

	// Charge the envelope, then feed silence for exactly one release time
	// constant (100 ms = 4410 samples).
	for range 2000 {
		f.Process(1.0)
	}

	start := f.Envelope()

	for range 4410 {
		f.Process(0)
	}

	want := start * math.Exp(-1)
	if math.Abs(f.Envelope()-want) > 1e-9 {
		t.Errorf("Envelope() = %v after one release constant, want %v", f.Envelope(), want)
	}
}

// TestEnvelopeAttackFasterThanRelease verifies the asymmetric tracking.
func TestEnvelopeAttackFasterThanRelease(t *testing.T) {
	f, _ := NewEnvelopeFollower(44100, 1, 100)

	for range 500 {
		f.Process(1.0)
	}

	charged := f.Envelope()

	// 500 samples of silence decays far less than 500 samples of signal
	// charged, since release is 100x slower than attack.
	for range 500 {
		f.Process(0)
	}

	if f.Envelope() < charged*0.8 {
		t.Errorf("envelope decayed to %v of %v, release should be slow", f.Envelope(), charged)
	}
}

// TestEnvelopeSetters verifies setter validation and effect.
func TestEnvelopeSetters(t *testing.T) {
	f, _ := NewEnvelopeFollower(44100, 10, 100)

	if err := f.SetAttack(5); err != nil {
		t.Fatalf("SetAttack(5) error = %v", err)
	}

	if f.Attack() != 5 {
		t.Errorf("Attack() = %v, want 5", f.Attack())
	}

	if err := f.SetAttack(0.01); err == nil {
		t.Error("SetAttack(0.01) expected error")
	}

	if err := f.SetRelease(200); err != nil {
		t.Fatalf("SetRelease(200) error = %v", err)
	}

	if f.Release() != 200 {
		t.Errorf("Release() = %v, want 200", f.Release())
	}

	if err := f.SetRelease(math.Inf(1)); err == nil {
		t.Error("SetRelease(+Inf) expected error")
	}

	if err := f.SetSampleRate(48000); err != nil {
		t.Fatalf("SetSampleRate(48000) error = %v", err)
	}

	if f.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %v, want 48000", f.SampleRate())
	}

	if err := f.SetSampleRate(-1); err == nil {
		t.Error("SetSampleRate(-1) expected error")
	}
}

// TestEnvelopeReset verifies reset clears state.
func TestEnvelopeReset(t *testing.T) {
	f, _ := NewEnvelopeFollower(44100, 1, 100)

	for range 100 {
		f.Process(0.5)
	}

	if f.Envelope() == 0 {
		t.Fatal("envelope should be non-zero after processing")
	}

	f.Reset()

	if f.Envelope() != 0 {
		t.Errorf("Envelope() = %v after Reset(), want 0", f.Envelope())
	}
}
