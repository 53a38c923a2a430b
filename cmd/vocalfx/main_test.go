package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
)

func TestBitDepthScale(t *testing.T) {
	tests := []struct {
		bits    int
		want    float64
		wantErr bool
	}{
		{16, 32768, false},
		{24, 8388608, false},
		{32, 2147483648, false},
		{8, 0, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		got, err := bitDepthScale(tt.bits)
		if tt.wantErr {
			if err == nil {
				t.Errorf("bitDepthScale(%d) expected error", tt.bits)
			}
			continue
		}

		if err != nil {
			t.Errorf("bitDepthScale(%d) error: %v", tt.bits, err)
			continue
		}

		if got != tt.want {
			t.Errorf("bitDepthScale(%d) = %v, want %v", tt.bits, got, tt.want)
		}
	}
}

func TestDeinterleaveInterleaveRoundTrip(t *testing.T) {
	// Stereo frames: L/R pairs including the 16-bit extremes.
	data := []int{0, 1000, -1000, 32767, -32768, 12345, -54, 7}

	channels := deinterleave(data, 2, 32768)
	if len(channels) != 2 {
		t.Fatalf("deinterleave channels = %d, want 2", len(channels))
	}

	if len(channels[0]) != 4 || len(channels[1]) != 4 {
		t.Fatalf("frame counts = %d/%d, want 4/4", len(channels[0]), len(channels[1]))
	}

	if channels[0][0] != 0 || channels[1][0] != 1000.0/32768 {
		t.Fatalf("first frame split = %v/%v", channels[0][0], channels[1][0])
	}

	got := make([]int, len(data))
	interleave(got, channels, 32768)

	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, got[i], data[i])
		}
	}
}

func TestInterleaveClampsToCodeRange(t *testing.T) {
	channels := [][]float64{{1.5, -1.5}}

	got := make([]int, 2)
	interleave(got, channels, 32768)

	if got[0] != 32767 {
		t.Errorf("positive overflow code = %d, want 32767", got[0])
	}

	if got[1] != -32768 {
		t.Errorf("negative overflow code = %d, want -32768", got[1])
	}
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	in := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{0, 5, -12, 32767, -32768, 441, 9, -9},
		SourceBitDepth: 16,
	}

	if err := writeWAV(path, in); err != nil {
		t.Fatalf("writeWAV error: %v", err)
	}

	out, err := readWAV(path)
	if err != nil {
		t.Fatalf("readWAV error: %v", err)
	}

	if out.Format.SampleRate != 44100 || out.Format.NumChannels != 2 {
		t.Errorf("format = %d Hz / %d ch, want 44100 / 2",
			out.Format.SampleRate, out.Format.NumChannels)
	}

	if int(out.SourceBitDepth) != 16 {
		t.Errorf("bit depth = %d, want 16", out.SourceBitDepth)
	}

	if len(out.Data) != len(in.Data) {
		t.Fatalf("sample count = %d, want %d", len(out.Data), len(in.Data))
	}

	for i := range in.Data {
		if out.Data[i] != in.Data[i] {
			t.Fatalf("sample %d = %d, want %d", i, out.Data[i], in.Data[i])
		}
	}
}

func TestReadWAVRejectsNonWAV(t *testing.T) {
	if _, err := readWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunRejectsInvalidGain(t *testing.T) {
	for _, gain := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		opts := options{inPath: "in.wav", outPath: "out.wav", gain: gain}
		if err := run(opts); err == nil {
			t.Errorf("run with gain %f expected error", gain)
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	const frames = 4410

	data := make([]int, frames)
	for i := range data {
		data[i] = int(math.Round(0.2 * 32767 * math.Sin(2*math.Pi*440*float64(i)/44100)))
	}

	in := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := writeWAV(inPath, in); err != nil {
		t.Fatalf("writeWAV error: %v", err)
	}

	opts := options{inPath: inPath, outPath: outPath, preset: "natural", gain: 1.0}
	if err := run(opts); err != nil {
		t.Fatalf("run error: %v", err)
	}

	out, err := readWAV(outPath)
	if err != nil {
		t.Fatalf("readWAV error: %v", err)
	}

	if len(out.Data) != frames {
		t.Fatalf("output frames = %d, want %d", len(out.Data), frames)
	}

	peak := 0
	for _, v := range out.Data {
		if v > peak {
			peak = v
		}
		if -v > peak {
			peak = -v
		}
	}

	if peak > 32767 {
		t.Errorf("output peak code = %d, exceeds 16-bit range", peak)
	}

	if peak < 100 {
		t.Errorf("output peak code = %d, signal vanished", peak)
	}
}

func TestRunUnknownPresetFails(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")

	in := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           make([]int, 64),
		SourceBitDepth: 16,
	}
	if err := writeWAV(inPath, in); err != nil {
		t.Fatalf("writeWAV error: %v", err)
	}

	opts := options{inPath: inPath, outPath: filepath.Join(dir, "out.wav"), preset: "club", gain: 1.0}
	if err := run(opts); err == nil {
		t.Error("expected error for unknown preset")
	}
}