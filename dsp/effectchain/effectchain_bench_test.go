package effectchain

import (
	"math"
	"testing"
)

func benchInput(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		x := float64(i)
		buf[i] = 0.4*math.Sin(2*math.Pi*440*x/44100) + 0.1*math.Sin(2*math.Pi*6500*x/44100)
	}

	return buf
}

func BenchmarkChainProcessInPlace(b *testing.B) {
	c, err := NewChain(44100)
	if err != nil {
		b.Fatal(err)
	}

	if err := c.ApplyPreset("natural"); err != nil {
		b.Fatal(err)
	}

	buf := benchInput(2048)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		c.ProcessInPlace(buf)
	}
}

func BenchmarkEngineProcessInPlace(b *testing.B) {
	e, err := NewEngine(44100)
	if err != nil {
		b.Fatal(err)
	}

	if err := e.Chain().ApplyPreset("studio"); err != nil {
		b.Fatal(err)
	}

	buf := benchInput(2048)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		e.ProcessInPlace(buf)
	}
}

func BenchmarkApplyPreset(b *testing.B) {
	c, err := NewChain(44100)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if err := c.ApplyPreset("bright"); err != nil {
			b.Fatal(err)
		}
	}
}
