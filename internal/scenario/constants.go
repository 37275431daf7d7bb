package scenario

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// Built-in scenario levels.
const (
	// syncEntry and powerEntry sit above the coupling entry thresholds.
	syncEntry  mathutil.Q = 13107 // 0.8
	powerEntry mathutil.Q = 8192  // 0.5

	// syncRest and powerRest sit between the hysteresis thresholds.
	syncRest  mathutil.Q = 9830 // 0.6
	powerRest mathutil.Q = 5734 // 0.35

	// betaQuiet and betaLoud are masking amplitudes on either side of the
	// bank quiet gate.
	betaQuiet mathutil.Q = 2048  // 0.125
	betaLoud  mathutil.Q = 12288 // 0.75

	// matchedAmplitude is the amplitude of the matched oscillators.
	matchedAmplitude = 0.5
)

// Built-in scenario timing in ticks.
const (
	// sweepHold is how long the profile sweep dwells on each profile.
	sweepHold = 8000

	// sweepRamp is the profile ramp length used by the sweep.
	sweepRamp = 4000

	// syncRestTicks precedes the entry drive in the sync scenario.
	syncRestTicks = 1000

	// syncHoldTicks is how long the entry drive is held.
	syncHoldTicks = 6000

	// quietToggle is the beta gate toggle period of the drift soak.
	quietToggle = 3000
)

// Lua scenario interface.
const (
	// luaStepFunc is the global function a script must define.
	luaStepFunc = "step"

	// luaOneGlobal exposes Q14 One to scripts.
	luaOneGlobal = "ONE"
)

// Lua input fields, in Q14 real units unless noted.
const (
	fieldProfile  = "profile"  // integer selector
	fieldDuration = "duration" // integer ticks
	fieldSync     = "sync"
	fieldPower    = "power"
	fieldPhase    = "phase" // integer code
	fieldBeta     = "beta"
	fieldCoherent = "coherent" // boolean
)

// Lua output fields.
const (
	fieldOverall   = "overall"
	fieldPermitted = "permitted"
	fieldAccess    = "access"
	fieldMode      = "mode"
	fieldProgress  = "progress"
	fieldTick      = "tick"
)

// Selector widths.
const (
	profileCodeMask = 0x7 // 3-bit profile selector
	phaseCodeMask   = 0x7 // 3-bit phase code
	maxDuration     = 65535.0
)

// Landscape input derivation.
const (
	ratioFloor = 16   // smallest theta used as a ratio denominator
	spreadStep = 0.05 // exponent spread between oscillators on one band
)
