package coupling

import (
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/profile"
)

// Hysteresis thresholds.
const (
	SyncHigh   mathutil.Q = 11469 // entry: synchrony above 0.7
	SyncLow    mathutil.Q = 8192  // exit: synchrony below 0.5
	PowerEntry mathutil.Q = 6554  // entry: boundary power above 0.4
	PowerExit  mathutil.Q = 4096  // exit: boundary power below 0.25
)

// Timing in ticks.
const (
	// Debounce is the number of consecutive ticks a raw condition must
	// hold before it is acted on.
	Debounce = 2000

	// TransitionTicks is the length of the Transitioning state.
	TransitionTicks = 2000
)

// State-driven override.
const (
	// overrideProfile forces the harmonic mode.
	overrideProfile = profile.Meditation

	// overrideProgress arms the override once a profile ramp passes 25%.
	overrideProgress mathutil.Q = mathutil.One / 4
)

// Gain targets.
const (
	modulatoryPAC      mathutil.Q = mathutil.One
	modulatoryHarmonic mathutil.Q = 0
	harmonicPAC        mathutil.Q = mathutil.One / 4
	harmonicHarmonic   mathutil.Q = mathutil.One

	// midpointPAC and midpointHarmonic are held while Transitioning.
	midpointPAC      mathutil.Q = (modulatoryPAC + harmonicPAC) / 2
	midpointHarmonic mathutil.Q = (modulatoryHarmonic + harmonicHarmonic) / 2

	// gainStep is the constant slew per tick (full scale in ~500 ms).
	gainStep mathutil.Q = 8
)

// controllerLatency is the registered output delay in ticks.
const controllerLatency = 1
