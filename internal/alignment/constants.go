package alignment

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// NumInputs is the number of weighted alignment inputs.
const NumInputs = 4

// Weights are the fixed input weights 0.4/0.3/0.2/0.1. They sum to One.
var Weights = [NumInputs]mathutil.Q{6554, 4915, 3277, 1638}

// Gating thresholds.
const (
	// primaryGate is the minimum first alignment for ignition (0.3).
	primaryGate mathutil.Q = 4915

	// stabilityGate is the minimum second-boundary stability (0.2).
	stabilityGate mathutil.Q = 3277

	// accessGate is the minimum third alignment for access (0.3).
	accessGate mathutil.Q = 4915
)

// Threshold modulation: scale = 1.5 − 0.5×overall.
const (
	thresholdScaleBase  mathutil.Q = 3 * mathutil.Half
	thresholdScaleSlope mathutil.Q = mathutil.Half
)

// Pipeline latencies in ticks.
const (
	// IgnitionLatency is the delay from a gating input to Permitted.
	IgnitionLatency = 2

	// AccessLatency is the delay from an input to Access.
	AccessLatency = 3
)
