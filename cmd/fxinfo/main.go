// Command fxinfo lists vocal effect presets and their equalizer responses.
//
// Usage:
//
//	fxinfo [flags] [preset-name ...]
//
// Without arguments it prints every preset.
//
// Examples:
//
//	fxinfo -list
//	fxinfo warm studio
//	fxinfo -response -rate 48000 vocalRecording
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vocalix/vocalfx/dsp/effectchain"
)

var responseFreqs = []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000}

func main() {
	list := flag.Bool("list", false, "list preset names")
	response := flag.Bool("response", false, "print equalizer frequency responses")
	rate := flag.Float64("rate", 44100, "sample rate for response evaluation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxinfo [flags] [preset-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Lists vocal effect presets and their equalizer responses.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every preset.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, name := range effectchain.PresetNames() {
			fmt.Println(name)
		}

		return
	}

	names := flag.Args()
	if len(names) == 0 {
		names = effectchain.PresetNames()
	}

	names = knownPresets(names)
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching presets\n")
		os.Exit(1)
	}

	if *response {
		if err := printResponses(names, *rate); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	printGeneral(names)
	printBands(names)
}

func knownPresets(names []string) []string {
	var result []string

	for _, name := range names {
		name = strings.TrimSpace(name)

		_, general := effectchain.LookupPreset(name)
		_, band := effectchain.LookupEQBandPreset(name)

		if !general && !band {
			fmt.Fprintf(os.Stderr, "warning: unknown preset %q (use -list to see available)\n", name)
			continue
		}

		result = append(result, name)
	}

	return result
}

func printGeneral(names []string) {
	var rows []string

	for _, name := range names {
		s, ok := effectchain.LookupPreset(name)
		if !ok {
			continue
		}

		rows = append(rows, fmt.Sprintf("%s\t%+.1f/%+.1f/%+.1f\t%.0f\t%.1f\t%.0f\t%.0f\t%+.1f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f",
			name,
			s.Equalizer.LowGainDB, s.Equalizer.MidGainDB, s.Equalizer.HighGainDB,
			s.Compressor.ThresholdDB, s.Compressor.Ratio,
			s.Compressor.AttackMs, s.Compressor.ReleaseMs, s.Compressor.MakeupGainDB,
			s.Reverb.RoomSize, s.Reverb.Damping, s.Reverb.WetLevel, s.Reverb.DryLevel, s.Reverb.Width,
		))
	}

	if len(rows) == 0 {
		return
	}

	header := "Preset\tEQ L/M/H [dB]\tThr [dB]\tRatio\tAtt [ms]\tRel [ms]\tMakeup [dB]\tRoom\tDamp\tWet\tDry\tWidth"
	if err := printTable(header, rows); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	fmt.Println()
}

func printBands(names []string) {
	for _, name := range names {
		bands, ok := effectchain.LookupEQBandPreset(name)
		if !ok {
			continue
		}

		fmt.Printf("%s:\n", name)

		rows := make([]string, len(bands))
		for i, b := range bands {
			q := "-"
			if b.Q > 0 {
				q = fmt.Sprintf("%.1f", b.Q)
			}

			rows[i] = fmt.Sprintf("  %d\t%s\t%.0f\t%+.1f\t%s", i+1, b.Kind, b.Frequency, b.GainDB, q)
		}

		if err := printTable("  Band\tKind\tFreq [Hz]\tGain [dB]\tQ", rows); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}

		fmt.Println()
	}
}

// printResponses applies each preset to a fresh chain and evaluates the
// equalizer's magnitude response at the reference frequencies.
func printResponses(names []string, rate float64) error {
	var header strings.Builder

	header.WriteString("Preset")

	for _, f := range responseFreqs {
		if f >= 1000 {
			fmt.Fprintf(&header, "\t%gk", f/1000)
		} else {
			fmt.Fprintf(&header, "\t%g", f)
		}
	}

	rows := make([]string, 0, len(names))

	for _, name := range names {
		chain, err := effectchain.NewChain(rate)
		if err != nil {
			return err
		}

		if err := chain.ApplyPreset(name); err != nil {
			return err
		}

		var row strings.Builder

		row.WriteString(name)

		for _, f := range responseFreqs {
			if f >= rate/2 {
				row.WriteString("\t-")
				continue
			}

			fmt.Fprintf(&row, "\t%+.1f", chain.Equalizer().MagnitudeDB(f))
		}

		rows = append(rows, row.String())
	}

	return printTable(header.String(), rows)
}

func printTable(header string, rows []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
