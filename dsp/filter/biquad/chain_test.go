package biquad

import "testing"

// --- construction ---

func TestNewChainDefaults(t *testing.T) {
	c := NewChain([]Coefficients{testCoefficients(), Identity()})

	if c.NumSections() != 2 {
		t.Fatalf("NumSections() = %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order() = %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("Gain() = %v, want 1", c.Gain())
	}
}

func TestNewChainWithGain(t *testing.T) {
	c := NewChain([]Coefficients{Identity()}, WithGain(0.5))

	if c.Gain() != 0.5 {
		t.Fatalf("Gain() = %v, want 0.5", c.Gain())
	}
	if y := c.ProcessSample(1); y != 0.5 {
		t.Fatalf("ProcessSample(1) = %v, want 0.5", y)
	}
}

// --- cascading ---

func TestChainMatchesSequentialSections(t *testing.T) {
	sig := testSignal(128)

	chain := NewChain([]Coefficients{testCoefficients(), testCoefficients()})
	first := NewSection(testCoefficients())
	second := NewSection(testCoefficients())

	got := make([]float64, len(sig))
	copy(got, sig)
	chain.ProcessBlock(got)

	want := make([]float64, len(sig))
	copy(want, sig)
	first.ProcessBlock(want)
	second.ProcessBlock(want)

	for i := range want {
		if !approxEqual(got[i], want[i], 1e-12) {
			t.Fatalf("chain[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestChainProcessBlockMatchesPerSample(t *testing.T) {
	sig := testSignal(64)

	blockChain := NewChain([]Coefficients{testCoefficients()}, WithGain(0.8))
	sampleChain := NewChain([]Coefficients{testCoefficients()}, WithGain(0.8))

	block := make([]float64, len(sig))
	copy(block, sig)
	blockChain.ProcessBlock(block)

	for i, x := range sig {
		want := sampleChain.ProcessSample(x)
		if !approxEqual(block[i], want, 1e-12) {
			t.Fatalf("block[%d] = %v, want %v", i, block[i], want)
		}
	}
}

// --- retuning ---

func TestUpdateCoefficientsPreservesStateOnSameCount(t *testing.T) {
	c := NewChain([]Coefficients{testCoefficients(), testCoefficients()})
	c.ProcessBlock(testSignal(64))

	before := c.State()
	c.UpdateCoefficients([]Coefficients{Identity(), Identity()}, 2)

	after := c.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("section %d state changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if c.Gain() != 2 {
		t.Fatalf("Gain() = %v, want 2", c.Gain())
	}
}

func TestUpdateCoefficientsResetsOnCountChange(t *testing.T) {
	c := NewChain([]Coefficients{testCoefficients()})
	c.ProcessBlock(testSignal(64))

	c.UpdateCoefficients([]Coefficients{Identity(), Identity(), Identity()}, 1)

	if c.NumSections() != 3 {
		t.Fatalf("NumSections() = %d, want 3", c.NumSections())
	}
	for i, st := range c.State() {
		if st != (State{}) {
			t.Fatalf("section %d state = %+v, want zero after rebuild", i, st)
		}
	}
}

func TestChainSetStateLengthMismatch(t *testing.T) {
	c := NewChain([]Coefficients{testCoefficients()})
	c.ProcessBlock(testSignal(16))

	before := c.State()
	c.SetState([]State{{X1: 1}, {X1: 2}})

	after := c.State()
	if before[0] != after[0] {
		t.Fatalf("SetState with wrong length mutated state: %+v -> %+v", before[0], after[0])
	}
}
