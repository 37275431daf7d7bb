package srbank

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// Coherence parameters.
const (
	// magnitudeFloor is the smallest |a|×|b| product (Q28) used as a divisor.
	magnitudeFloor = 1

	// sigmoidLow maps to gain 0; coherence One maps to gain One.
	sigmoidLow mathutil.Q = mathutil.Half

	// sigmoidSlope is One/(One − sigmoidLow).
	sigmoidSlope = 2

	// activeCoherence marks a harmonic as active when quiet (0.75).
	activeCoherence mathutil.Q = 3 * mathutil.One / 4
)

// Quiet gate parameters.
const (
	// QuietThreshold: amplitudes below it are quiet (0.5).
	QuietThreshold mathutil.Q = mathutil.Half

	// QuietFloor: amplitudes at or below it give quiet factor One (0.25).
	QuietFloor mathutil.Q = mathutil.One / 4
)

// Enhancement parameters.
const (
	// enhancementBase is the adaptive enhancement at full stability.
	enhancementBase = mathutil.One

	// enhancementGain scales (1 − stability) in adaptive mode (0.5).
	enhancementGain = mathutil.Half
)

// fixedEnhancement is the per-harmonic enhancement in fixed mode.
var fixedEnhancement = [...]float64{1.5, 1.3, 1.2, 1.1, 1.05}

// bankLatency is the pipeline depth in ticks.
const bankLatency = 2
