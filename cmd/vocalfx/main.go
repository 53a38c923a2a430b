// Command vocalfx processes a WAV file through the vocal effect chain.
//
// Usage:
//
//	vocalfx -in voice.wav -out processed.wav [flags]
//
// Each channel runs through its own engine, so stereo files keep their
// channels independent. The optional denoise and enhance passes run
// before the preset chain.
//
// Examples:
//
//	vocalfx -in take.wav -out warm.wav -preset warm
//	vocalfx -in demo.wav -out clean.wav -denoise -enhance
//	vocalfx -in raw.wav -out out.wav -preset vocalRecording -gain 0.8
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vocalix/vocalfx/dsp/core"
	"github.com/vocalix/vocalfx/dsp/effectchain"
)

type options struct {
	inPath  string
	outPath string
	preset  string
	denoise bool
	enhance bool
	gain    float64
}

func main() {
	var opts options

	flag.StringVar(&opts.inPath, "in", "", "input WAV file (required)")
	flag.StringVar(&opts.outPath, "out", "", "output WAV file (required)")
	flag.StringVar(&opts.preset, "preset", "natural", "effect chain preset")
	flag.BoolVar(&opts.denoise, "denoise", false, "run spectral denoising before the chain")
	flag.BoolVar(&opts.enhance, "enhance", false, "run the voice enhancement pipeline before the chain")
	flag.Float64Var(&opts.gain, "gain", 1.0, "output gain applied after the chain")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vocalfx -in voice.wav -out processed.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Processes a WAV file through the vocal effect chain.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPresets:\n")
		for _, name := range effectchain.PresetNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
	}
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.inPath == "" || opts.outPath == "" {
		flag.Usage()
		return errors.New("both -in and -out are required")
	}

	if opts.gain <= 0 || math.IsNaN(opts.gain) || math.IsInf(opts.gain, 0) {
		return fmt.Errorf("gain must be positive and finite: %f", opts.gain)
	}

	buf, err := readWAV(opts.inPath)
	if err != nil {
		return err
	}

	scale, err := bitDepthScale(int(buf.SourceBitDepth))
	if err != nil {
		return err
	}

	rate := buf.Format.SampleRate
	numChans := buf.Format.NumChannels
	frames := len(buf.Data) / numChans

	fmt.Printf("%s: %d ch, %d Hz, %d frames\n", opts.inPath, numChans, rate, frames)

	channels := deinterleave(buf.Data, numChans, scale)

	sanitized := 0
	for i, ch := range channels {
		n, err := processChannel(ch, float64(rate), opts)
		if err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}

		sanitized += n
	}

	if sanitized > 0 {
		fmt.Printf("sanitized %d non-finite input samples\n", sanitized)
	}

	interleave(buf.Data, channels, scale)

	if err := writeWAV(opts.outPath, buf); err != nil {
		return err
	}

	fmt.Printf("wrote %s (preset %s)\n", opts.outPath, opts.preset)

	return nil
}

// processChannel runs one channel through its own engine and returns the
// number of sanitized input samples.
func processChannel(ch []float64, sampleRate float64, opts options) (int, error) {
	engine, err := effectchain.NewEngine(sampleRate)
	if err != nil {
		return 0, err
	}

	if err := engine.Chain().ApplyPreset(opts.preset); err != nil {
		return 0, err
	}

	if opts.denoise {
		denoiser, err := engine.NewSpectralDenoiser()
		if err != nil {
			return 0, err
		}

		denoiser.ProcessInPlace(ch)
	}

	if opts.enhance {
		engine.VoiceEnhancer().ProcessInPlace(ch)
	}

	sanitized := engine.ProcessInPlace(ch)

	if opts.gain != 1.0 {
		vecmath.ScaleBlock(ch, ch, opts.gain)
	}

	for i := range ch {
		ch[i] = core.Clamp(ch[i], -1, 1)
	}

	return sanitized, nil
}

func readWAV(path string) (*audio.IntBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not read PCM data: %w", err)
	}

	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, errors.New("input has no audio channels")
	}

	return buf, nil
}

func writeWAV(path string, buf *audio.IntBuffer) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output: %w", err)
	}
	defer out.Close()

	encoder := wav.NewEncoder(out, buf.Format.SampleRate, int(buf.SourceBitDepth), buf.Format.NumChannels, 1)

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("could not write PCM data: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("could not finalize output: %w", err)
	}

	return nil
}

// bitDepthScale returns the full-scale divisor that maps integer PCM to
// [-1, 1] floats.
func bitDepthScale(bits int) (float64, error) {
	switch bits {
	case 16:
		return 32768, nil
	case 24:
		return 8388608, nil
	case 32:
		return 2147483648, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bits)
	}
}

func deinterleave(data []int, numChans int, scale float64) [][]float64 {
	frames := len(data) / numChans

	channels := make([][]float64, numChans)
	for c := range channels {
		channels[c] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			channels[c][i] = float64(data[i*numChans+c]) / scale
		}
	}

	return channels
}

func interleave(data []int, channels [][]float64, scale float64) {
	numChans := len(channels)
	maxCode := scale - 1

	for c, ch := range channels {
		for i, v := range ch {
			code := math.Round(v * scale)
			if code > maxCode {
				code = maxCode
			} else if code < -scale {
				code = -scale
			}

			data[i*numChans+c] = int(code)
		}
	}
}
