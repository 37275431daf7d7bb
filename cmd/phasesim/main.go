// Command phasesim runs the phase control plane through a scenario and
// records its outputs.
//
// Usage:
//
//	phasesim -scenario sync-entry -csv trace.csv
//	phasesim -scenario profile-sweep -wav trace.wav -wav-columns overall,pac_gain
//	phasesim -script drive.lua -ticks 40000 -summary
//	phasesim -list
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/phicore/phasectl"
	"github.com/phicore/phasectl/internal/analysis"
	"github.com/phicore/phasectl/internal/scenario"
	"github.com/phicore/phasectl/internal/trace"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("scenario", defaultScenario, "Built-in scenario (see -list)")
	script := flag.String("script", "", "Lua scenario script (overrides -scenario)")
	ticks := flag.Int("ticks", 0, "Ticks to run (0 = scenario length)")
	seed := flag.Uint("seed", phasectl.DefaultSeed, "Drift PRNG seed")
	randomInit := flag.Bool("random-init", false, "Start drift channels at seed-derived offsets")
	adaptive := flag.Bool("adaptive", false, "Adaptive reference bank enhancement")
	csvPath := flag.String("csv", "", "Write the trace as CSV")
	wavPath := flag.String("wav", "", "Write selected trace columns as WAV at the tick rate")
	wavColumns := flag.String("wav-columns", defaultWAVColumns, "Comma-separated columns for -wav")
	summary := flag.Bool("summary", false, "Print a per-signal summary")
	list := flag.Bool("list", false, "List built-in scenarios and exit")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *list {
		for _, n := range scenario.Builtins() {
			fmt.Println(n)
		}
		return nil
	}

	cfg := phasectl.DefaultConfig()
	cfg.Seed = uint16(*seed)
	cfg.RandomInit = *randomInit
	cfg.AdaptiveEnhancement = *adaptive

	ctrl, err := phasectl.New(cfg)
	if err != nil {
		return err
	}

	sc, closeScenario, err := openScenario(*name, *script, *ticks)
	if err != nil {
		return err
	}
	defer closeScenario()

	total := *ticks
	if total <= 0 {
		total = sc.Ticks()
	}

	if *verbose {
		info := ctrl.GetInfo()
		log.Printf("Scenario: %s (%d ticks, %.1f s)", sc.Name(), total, float64(total)/info.TickRate)
		log.Printf("Tick rate: %.0f Hz, oscillators: %d", info.TickRate, info.Oscillators)
		log.Printf("Ignition latency: %d ticks, access latency: %d ticks",
			info.IgnitionLatency, info.AccessLatency)
	}

	rec, err := trace.New(cfg.TickRate, phasectl.TraceColumns()...)
	if err != nil {
		return err
	}

	progress := newProgressTracker(int64(total), *verbose)
	row := make([]float64, 0, len(phasectl.TraceColumns()))
	err = scenario.Run(ctrl, sc, total, func(out *phasectl.Outputs) error {
		row = out.TraceRow(row[:0])
		progress.reportIfNeeded(int64(out.Tick))
		return rec.Append(row)
	})
	progress.finish()
	if err != nil {
		return err
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, rec); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote %d rows to %s", rec.Len(), *csvPath)
		}
	}

	if *wavPath != "" {
		cols := splitColumns(*wavColumns)
		if err := writeWAV(*wavPath, rec, cols); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote %d channels to %s", len(cols), *wavPath)
		}
	}

	if *summary {
		printSummary(os.Stdout, analysis.Summarize(rec))
	}

	return nil
}

func splitColumns(s string) []string {
	var cols []string
	for c := range strings.SplitSeq(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
