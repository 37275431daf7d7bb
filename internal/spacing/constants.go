package spacing

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

const (
	// ratioFloor is the smallest denominator used when forming band ratios.
	ratioFloor mathutil.Q = 16

	// emaShift sets the baseline time constant to 2^emaShift ticks.
	emaShift = 6

	// deviationGain maps mean deviation 0.5 to index 0.
	deviationGain = 2

	// LockTolerance is 8% of φ. Every ratio deviation must be below it
	// for the spacing to be locked.
	LockTolerance mathutil.Q = mathutil.Phi * 8 / 100
)
