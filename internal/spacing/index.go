// Package spacing computes the harmonic spacing index: how closely the
// four adjacent band ratios follow the golden ratio.
package spacing

import (
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
)

// Output is one spacing evaluation.
type Output struct {
	Ratios     [params.NumPairs]mathutil.Q
	Deviations [params.NumPairs]mathutil.Q

	MeanDeviation mathutil.Q
	Instant       mathutil.Q // One − 2×mean, clamped to [0, One]
	Baseline      mathutil.Q // slow EMA of Instant
	Delta         mathutil.Q // Instant − previous Baseline
	Locked        bool       // every deviation below LockTolerance
}

// Index is the harmonic spacing index with its baseline tracker.
// The index itself is combinational; only the baseline is registered.
type Index struct {
	baseline mathutil.Q
	out      Output
}

// New creates a spacing index in its reset state.
func New() *Index {
	return &Index{}
}

// Evaluate computes the combinational part of the index for five band
// frequencies ordered theta..gamma. The baseline fields are left zero.
func Evaluate(bands [params.NumBands]mathutil.Q) Output {
	var out Output
	var sum int64

	locked := true
	for i := range params.NumPairs {
		ratio := mathutil.Div(bands[i+1], bands[i], ratioFloor)
		dev := mathutil.Abs(mathutil.Sub(ratio, mathutil.Phi))

		out.Ratios[i] = ratio
		out.Deviations[i] = dev
		sum += int64(dev)
		locked = locked && dev < LockTolerance
	}

	out.MeanDeviation = mathutil.Sat(sum / params.NumPairs)
	out.Instant = mathutil.ClampUnitWide(int64(mathutil.One) - deviationGain*int64(out.MeanDeviation))
	out.Locked = locked

	return out
}

// Tick evaluates the index and advances the baseline.
func (x *Index) Tick(bands [params.NumBands]mathutil.Q) Output {
	out := Evaluate(bands)

	out.Delta = mathutil.Sub(out.Instant, x.baseline)
	x.baseline = mathutil.Sat(int64(x.baseline) + (int64(out.Instant)-int64(x.baseline))>>emaShift)
	out.Baseline = x.baseline

	x.out = out
	return out
}

// Output returns the latest evaluation.
func (x *Index) Output() Output {
	return x.out
}

// Reset clears the baseline.
func (x *Index) Reset() {
	x.baseline = 0
	x.out = Output{}
}

// GetLatency returns zero: the index is combinational.
func (x *Index) GetLatency() int {
	return 0
}
