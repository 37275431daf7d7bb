package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/phicore/phasectl/internal/analysis"
	"github.com/phicore/phasectl/internal/scenario"
	"github.com/phicore/phasectl/internal/trace"
	"golang.org/x/term"
)

// openScenario returns the Lua script at path when given, otherwise the
// named built-in. The returned func releases any script state.
func openScenario(name, path string, ticks int) (scenario.Scenario, func(), error) {
	if path == "" {
		s, err := scenario.Lookup(name)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read script: %w", err)
	}

	s, err := scenario.LoadScript(path, string(src), max(ticks, minScriptTicks))
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

// writeCSV writes the trace to path.
func writeCSV(path string, rec *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := rec.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeWAV writes the selected trace columns to path.
func writeWAV(path string, rec *trace.Trace, cols []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	if err := rec.WriteWAV(f, cols...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// printSummary writes one line per signal.
func printSummary(w io.Writer, sums []analysis.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "signal\tmean\tstd\tmin\tmax\tduty\tchanges")
	for _, s := range sums {
		_, _ = fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\t%d\n",
			s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.Duty, s.Changes)
	}
	_ = tw.Flush()
}

// progressTracker handles progress reporting. On a terminal the progress
// line is redrawn in place; otherwise it is logged every progressInterval
// percent.
type progressTracker struct {
	total        int64
	lastProgress int
	verbose      bool
	terminal     bool
	out          io.Writer
}

// newProgressTracker creates a new progress tracker writing to stderr.
func newProgressTracker(total int64, verbose bool) *progressTracker {
	return &progressTracker{
		total:    total,
		verbose:  verbose,
		terminal: term.IsTerminal(int(os.Stderr.Fd())),
		out:      os.Stderr,
	}
}

// reportIfNeeded reports progress if a threshold was crossed.
func (p *progressTracker) reportIfNeeded(current int64) {
	if !p.verbose || p.total == 0 {
		return
	}

	progress := int(float64(current) / float64(p.total) * percentScale)
	step := progressInterval
	if p.terminal {
		step = terminalRefresh
	}
	if progress < p.lastProgress+step {
		return
	}
	p.lastProgress = progress

	if p.terminal {
		_, _ = fmt.Fprintf(p.out, "\rProgress: %3d%%", progress)
		return
	}
	log.Printf("Progress: %d%%", progress)
}

// finish terminates the in-place progress line.
func (p *progressTracker) finish() {
	if p.verbose && p.terminal && p.lastProgress > 0 {
		_, _ = fmt.Fprintln(p.out)
	}
}
