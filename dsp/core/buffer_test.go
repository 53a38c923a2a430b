package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 2, 8)

	grown := EnsureLen(buf, 6)
	if len(grown) != 6 {
		t.Fatalf("EnsureLen len = %d, want 6", len(grown))
	}
	if &grown[0] != &buf[0] {
		t.Fatal("expected capacity reuse for n <= cap")
	}

	fresh := EnsureLen(buf, 16)
	if len(fresh) != 16 {
		t.Fatalf("EnsureLen len = %d, want 16", len(fresh))
	}

	empty := EnsureLen(buf, 0)
	if len(empty) != 0 {
		t.Fatalf("EnsureLen len = %d, want 0", len(empty))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestEnsureLenKeepsCapacityAcrossZero(t *testing.T) {
	buf := EnsureLen(nil, 4)
	for i := range buf {
		buf[i] = float64(i + 1)
	}

	buf = EnsureLen(buf, 3)
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0 after Zero", i, v)
		}
	}
}
