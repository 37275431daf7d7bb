// Package analysis summarizes recorded control-plane traces: per-signal
// statistics, segment means over runs of a key column such as the
// coupling mode, and magnitude spectra for checking drift and entrainment
// frequencies.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/phicore/phasectl/internal/simdops"
	"github.com/phicore/phasectl/internal/trace"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooShort indicates a signal too short for the requested analysis.
var ErrTooShort = errors.New("signal too short")

// Summary describes one signal.
type Summary struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	RMS    float64

	// Duty is the fraction of samples above one half.
	Duty float64

	// Changes counts sample-to-sample value changes.
	Changes int
}

// Describe summarizes one signal. An empty signal yields a zero summary.
func Describe(name string, x []float64) Summary {
	s := Summary{Name: name}
	if len(x) == 0 {
		return s
	}

	ops := simdops.Float64Ops()

	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		s.StdDev = 0
	}
	s.Min = floats.Min(x)
	s.Max = floats.Max(x)
	s.RMS = math.Sqrt(ops.MeanSquare(x))

	active := 0
	for i, v := range x {
		if v > dutyThreshold {
			active++
		}
		if i > 0 && v != x[i-1] {
			s.Changes++
		}
	}
	s.Duty = float64(active) / float64(len(x))

	return s
}

// Summarize describes every column of a trace.
func Summarize(tr *trace.Trace) []Summary {
	out := make([]Summary, 0, len(tr.Columns()))
	for _, name := range tr.Columns() {
		col, _ := tr.Column(name)
		out = append(out, Describe(name, col))
	}
	return out
}

// Segment is a run of rows over which a key column is constant.
type Segment struct {
	Key   float64
	Start int
	Len   int

	// Means holds the mean of every other column over the run.
	Means map[string]float64
}

// Seconds returns the segment duration at the given tick rate.
func (s *Segment) Seconds(tickRate float64) float64 {
	if tickRate <= 0 {
		return 0
	}
	return float64(s.Len) / tickRate
}

// Segments splits a trace into runs of constant key and reports the
// mean of every other column per run.
func Segments(tr *trace.Trace, key string) ([]Segment, error) {
	keys, err := tr.Column(key)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, trace.ErrEmptyTrace
	}

	ops := simdops.Float64Ops()

	var segs []Segment
	start := 0
	for i := 1; i <= len(keys); i++ {
		if i < len(keys) && keys[i] == keys[start] {
			continue
		}

		seg := Segment{
			Key:   keys[start],
			Start: start,
			Len:   i - start,
			Means: make(map[string]float64, len(tr.Columns())-1),
		}
		for _, name := range tr.Columns() {
			if name == key {
				continue
			}
			col, _ := tr.Column(name)
			seg.Means[name] = ops.Mean(col[start:i])
		}
		segs = append(segs, seg)
		start = i
	}

	return segs, nil
}

// Correlation returns the Pearson correlation of two equally long signals.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples, got %d", ErrTooShort, len(x))
	}
	return stat.Correlation(x, y, nil), nil
}
