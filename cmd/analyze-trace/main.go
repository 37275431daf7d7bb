// Command analyze-trace summarizes a CSV trace written by phasesim.
//
// Usage:
//
//	analyze-trace trace.csv
//	analyze-trace -key mode -spectrum sr_f1,phi0_align trace.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/phicore/phasectl/internal/analysis"
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/trace"
)

// CLI defaults
const (
	defaultKey     = "state"
	minSpectrumHz  = 0.1 // lowest dominant frequency worth reporting
	requiredArgs   = 1
	tabPadding     = 2
	percentScale   = 100
	summaryFormat  = "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.1f%%\n"
	segmentFormat  = "%g\t%d\t%.2f s\t%s\n"
	spectrumFormat = "%s\t%.3f Hz\t%.5f\n"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer) error {
	rate := flag.Float64("rate", params.TickRate, "Tick rate the trace was recorded at")
	key := flag.String("key", defaultKey, "Column to segment the trace by (empty to skip)")
	spectrum := flag.String("spectrum", "", "Comma-separated columns to report the dominant frequency of")
	means := flag.String("means", "overall,pac_gain,harmonic_gain", "Columns to report per segment")
	flag.Parse()

	if flag.NArg() < requiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] trace.csv\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("missing trace file")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() { _ = f.Close() }()

	tr, err := trace.ReadCSV(f, *rate)
	if err != nil {
		return err
	}

	return report(w, tr, *key, split(*means), split(*spectrum))
}

// report writes the summary, segment and spectrum sections.
func report(w io.Writer, tr *trace.Trace, key string, means, spectra []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	_, _ = fmt.Fprintf(tw, "%d ticks, %.2f s\n\n", tr.Len(), tr.Seconds())
	_, _ = fmt.Fprintln(tw, "signal\tmean\tstd\tmin\tmax\tduty")
	for _, s := range analysis.Summarize(tr) {
		_, _ = fmt.Fprintf(tw, summaryFormat, s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.Duty*percentScale)
	}

	if key != "" {
		segs, err := analysis.Segments(tr, key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "\n%s\tstart\tlength\tmeans\n", key)
		for _, seg := range segs {
			var parts []string
			for _, name := range means {
				if v, ok := seg.Means[name]; ok {
					parts = append(parts, fmt.Sprintf("%s=%.3f", name, v))
				}
			}
			_, _ = fmt.Fprintf(tw, segmentFormat, seg.Key, seg.Start, seg.Seconds(tr.TickRate), strings.Join(parts, " "))
		}
	}

	if len(spectra) > 0 {
		_, _ = fmt.Fprintln(tw, "\nsignal\tdominant\tmagnitude")
		for _, name := range spectra {
			col, err := tr.Column(name)
			if err != nil {
				return err
			}
			s, err := analysis.ComputeSpectrum(col, tr.TickRate)
			if err != nil {
				return fmt.Errorf("spectrum of %s: %w", name, err)
			}
			freq, mag := s.Dominant()
			if freq < minSpectrumHz {
				freq, mag = 0, 0
			}
			_, _ = fmt.Fprintf(tw, spectrumFormat, name, freq, mag)
		}
	}

	return tw.Flush()
}

func split(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
