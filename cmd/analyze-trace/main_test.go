package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/phicore/phasectl/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate   = 4000.0
	testLength = 8000
	testToneHz = 2.5
)

func testTrace(t *testing.T) *trace.Trace {
	t.Helper()
	tr, err := trace.New(testRate, "state", "overall", "sr_f1")
	require.NoError(t, err)
	for i := range testLength {
		state := float64(i / (testLength / 2))
		f1 := 0.19 + 0.001*math.Sin(2*math.Pi*testToneHz*float64(i)/testRate)
		require.NoError(t, tr.Append([]float64{state, 0.25 + 0.5*state, f1}))
	}
	return tr
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report(&buf, testTrace(t), "state", []string{"overall"}, []string{"sr_f1"}))

	out := buf.String()
	assert.Contains(t, out, "8000 ticks, 2.00 s")
	assert.Contains(t, out, "overall=0.250")
	assert.Contains(t, out, "overall=0.750")
	assert.Contains(t, out, "2.500 Hz")
}

func TestReport_Errors(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, report(&buf, testTrace(t), "missing", nil, nil), trace.ErrColumnMismatch)
	require.ErrorIs(t, report(&buf, testTrace(t), "", nil, []string{"missing"}), trace.ErrColumnMismatch)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, split("a, b ,"))
	assert.Nil(t, split(""))
}
