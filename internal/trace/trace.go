// Package trace records per-tick control-plane signals and exports them as
// CSV, in the testbench column layout, or as multi-channel PCM WAV at the
// tick rate for spectrogram analysis.
package trace

import (
	"errors"
	"fmt"
	"slices"
)

// Common errors returned by the trace package.
var (
	// ErrEmptyTrace indicates an operation that needs at least one row.
	ErrEmptyTrace = errors.New("trace is empty")

	// ErrColumnMismatch indicates a row or column list that does not fit
	// the trace layout.
	ErrColumnMismatch = errors.New("column mismatch")
)

// Trace is an in-memory table of signals, one row per tick, stored
// column-major so each signal is a contiguous slice.
type Trace struct {
	// TickRate is the rate the rows were recorded at.
	TickRate float64

	names []string
	cols  [][]float64
}

// New creates an empty trace with the given column names.
func New(tickRate float64, columns ...string) (*Trace, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrColumnMismatch)
	}

	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if name == "" || name == SampleColumn {
			return nil, fmt.Errorf("%w: reserved or empty column name %q", ErrColumnMismatch, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrColumnMismatch, name)
		}
		seen[name] = true
	}

	t := &Trace{
		TickRate: tickRate,
		names:    slices.Clone(columns),
		cols:     make([][]float64, len(columns)),
	}
	for i := range t.cols {
		t.cols[i] = make([]float64, 0, defaultRowCapacity)
	}

	return t, nil
}

// Append adds one row. The row must have one value per column.
func (t *Trace) Append(row []float64) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("%w: row has %d values, trace has %d columns",
			ErrColumnMismatch, len(row), len(t.cols))
	}
	for i, v := range row {
		t.cols[i] = append(t.cols[i], v)
	}
	return nil
}

// Len returns the number of rows.
func (t *Trace) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// Columns returns the column names in order.
func (t *Trace) Columns() []string {
	return t.names
}

// Column returns the values of the named column. The slice is owned by
// the trace.
func (t *Trace) Column(name string) ([]float64, error) {
	i := slices.Index(t.names, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: unknown column %q", ErrColumnMismatch, name)
	}
	return t.cols[i], nil
}

// Row returns a copy of row i.
func (t *Trace) Row(i int) []float64 {
	row := make([]float64, len(t.cols))
	for c := range t.cols {
		row[c] = t.cols[c][i]
	}
	return row
}

// Seconds returns the recorded duration.
func (t *Trace) Seconds() float64 {
	if t.TickRate <= 0 {
		return 0
	}
	return float64(t.Len()) / t.TickRate
}
