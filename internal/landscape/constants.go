package landscape

import (
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
)

// Landscape potential.
const (
	// landscapeAmplitude scales sin(2πn) (0.25).
	landscapeAmplitude mathutil.Q = mathutil.One / 4
)

// Harmonic catastrophe parameters.
const (
	// catastropheMargin is the danger distance to a low-order ratio (0.05).
	catastropheMargin mathutil.Q = 819

	// catastropheGain is the repulsion gain (−0.5).
	catastropheGain mathutil.Q = -mathutil.Half

	// escapeGain scales the exported frequency correction (0.25).
	escapeGain mathutil.Q = mathutil.One / 4

	// numTargets is the number of low-order catastrophe ratios.
	numTargets = 5
)

// Rational resonance parameters.
const (
	// epsilonSquared is ε² for ε = 0.05.
	epsilonSquared mathutil.Q = 41

	// rationalWindow limits evaluation to table entries within ±0.25.
	rationalWindow mathutil.Q = mathutil.One / 4

	// rationalTermLimit clamps each term to ±0.125.
	rationalTermLimit mathutil.Q = mathutil.One / 8

	// rationalFloor is the smallest denominator a term may use.
	rationalFloor mathutil.Q = 8

	// rationalFirstUnit and rationalLastUnit bound the table: [1, 4).
	rationalFirstUnit = 1
	rationalLastUnit  = 4

	// numRationals is the number of table positions.
	numRationals = 24
)

// rationalDenominators lists the table denominators q with their
// resonance weights.
var rationalDenominators = []struct {
	q      int
	weight float64
}{
	{3, 0.02},
	{4, 0.015},
	{5, 0.01},
}

// Oscillator count limits.
const (
	// DefaultOscillators is the reference network size.
	DefaultOscillators = params.Oscillators

	// maxOscillators bounds the configured network size.
	maxOscillators = 64
)

// outputLatency is the registered output delay in ticks.
const outputLatency = 1
