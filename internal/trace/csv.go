package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// WriteCSV writes the trace as CSV with a leading sample column.
func (t *Trace) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.names)+1)
	header = append(header, SampleColumn)
	header = append(header, t.names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for i := range t.Len() {
		record[0] = strconv.Itoa(i)
		for c, col := range t.cols {
			record[c+1] = strconv.FormatFloat(col[i], floatFormat, floatPrecision, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a trace written by WriteCSV. The sample column is
// dropped; rows are taken in file order.
func ReadCSV(r io.Reader, tickRate float64) (*Trace, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTrace
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	header = slices.Clone(header) // later reads reuse the record
	if len(header) < 2 || header[0] != SampleColumn {
		return nil, fmt.Errorf("%w: CSV header must start with %q", ErrColumnMismatch, SampleColumn)
	}

	t, err := New(tickRate, header[1:]...)
	if err != nil {
		return nil, err
	}

	row := make([]float64, len(header)-1)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		for c := range row {
			v, err := strconv.ParseFloat(record[c+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, header[c+1], err)
			}
			row[c] = v
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	return t, nil
}
