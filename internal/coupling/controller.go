// Package coupling implements the coupling mode controller: a hysteretic,
// debounced three-state machine choosing between modulatory (PAC) and
// harmonic coupling, with gain interpolation that runs independently of
// the discrete mode.
package coupling

import (
	"fmt"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/profile"
)

// Mode is the coupling mode.
type Mode uint8

// Coupling modes.
const (
	Modulatory Mode = iota
	Transitioning
	Harmonic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Modulatory:
		return "modulatory"
	case Transitioning:
		return "transitioning"
	case Harmonic:
		return "harmonic"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Inputs are the per-tick controller inputs.
type Inputs struct {
	// Sync is the external synchrony order parameter.
	Sync mathutil.Q

	// Power is the aggregate boundary power metric.
	Power mathutil.Q

	// Phase is the external ignition phase.
	Phase params.Phase

	// Profile, ProfileRamping and ProfileProgress describe the profile
	// controller's previous-tick state.
	Profile         profile.ID
	ProfileRamping  bool
	ProfileProgress mathutil.Q
}

// Gains are the two coupling gains.
type Gains struct {
	PAC      mathutil.Q
	Harmonic mathutil.Q
}

// Outputs are the registered controller outputs.
type Outputs struct {
	Mode   Mode
	Target Mode
	Gains  Gains

	// Debug taps.
	EntryCount      int
	ExitCount       int
	TransitionCount int
	Entry           bool // debounced entry condition
	Exit            bool // debounced exit condition
	Override        bool
}

// Controller is the coupling mode controller.
type Controller struct {
	mode       Mode
	target     Mode
	transition int

	entryCount int
	exitCount  int

	gains Gains

	// Profile ramp snapshot.
	rampActive   bool
	rampStart    Gains
	rampTarget   Gains
	lastProgress mathutil.Q

	entry, exit, override bool
}

// New creates a controller in its reset state.
func New() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Tick advances the controller by one tick.
func (c *Controller) Tick(in *Inputs) {
	entryRaw := in.Sync > SyncHigh && in.Power > PowerEntry
	exitRaw := in.Sync < SyncLow || in.Power < PowerExit || in.Phase == params.PhaseDecay

	c.entryCount = debounce(c.entryCount, entryRaw)
	c.exitCount = debounce(c.exitCount, exitRaw)
	c.entry = c.entryCount >= Debounce
	c.exit = c.exitCount >= Debounce
	c.override = Override(in)

	switch c.mode {
	case Modulatory:
		if c.entry || c.override || in.Phase.IgnitionActive() {
			c.begin(Harmonic)
		}

	case Transitioning:
		c.transition = min(c.transition+1, TransitionTicks)
		switch {
		case c.target == Harmonic && c.exit && !c.override:
			c.mode, c.target, c.transition = Modulatory, Modulatory, 0
		case c.transition >= TransitionTicks:
			c.mode, c.transition = c.target, 0
		}

	case Harmonic:
		if c.exit && !c.override {
			c.begin(Modulatory)
		}
	}

	c.updateGains(in)
}

// Override reports whether the state-driven override forces the harmonic
// mode: the override profile is selected and its ramp, if any, has
// progressed past 25%.
func Override(in *Inputs) bool {
	return in.Profile == overrideProfile &&
		(!in.ProfileRamping || in.ProfileProgress > overrideProgress)
}

func (c *Controller) begin(target Mode) {
	c.mode, c.target, c.transition = Transitioning, target, 0
}

// debounce advances a saturating counter that restarts whenever the raw
// condition drops.
func debounce(count int, raw bool) int {
	if !raw {
		return 0
	}
	return min(count+1, Debounce)
}

// TargetGains returns the steady gains of a mode. Transitioning holds the
// midpoint.
func TargetGains(m Mode) Gains {
	switch m {
	case Harmonic:
		return Gains{PAC: harmonicPAC, Harmonic: harmonicHarmonic}
	case Transitioning:
		return Gains{PAC: midpointPAC, Harmonic: midpointHarmonic}
	default:
		return Gains{PAC: modulatoryPAC, Harmonic: modulatoryHarmonic}
	}
}

func (c *Controller) updateGains(in *Inputs) {
	target := TargetGains(c.mode)

	if c.mode == Transitioning {
		c.gains = target
		c.rampActive = false
		return
	}

	if !in.ProfileRamping {
		c.rampActive = false
		c.gains = Gains{
			PAC:      slew(c.gains.PAC, target.PAC),
			Harmonic: slew(c.gains.Harmonic, target.Harmonic),
		}
		return
	}

	progress := mathutil.ClampUnit(in.ProfileProgress)
	if !c.rampActive || progress < c.lastProgress || target != c.rampTarget {
		c.rampStart, c.rampTarget = c.gains, target
	}
	c.rampActive = true
	c.lastProgress = progress

	t, d := uint32(progress), uint32(mathutil.One)
	c.gains = Gains{
		PAC:      mathutil.Lerp(c.rampStart.PAC, c.rampTarget.PAC, t, d),
		Harmonic: mathutil.Lerp(c.rampStart.Harmonic, c.rampTarget.Harmonic, t, d),
	}
}

// slew moves v toward target by at most gainStep.
func slew(v, target mathutil.Q) mathutil.Q {
	switch {
	case v < target:
		return min(v+gainStep, target)
	case v > target:
		return max(v-gainStep, target)
	default:
		return v
	}
}

// Outputs returns the registered outputs.
func (c *Controller) Outputs() Outputs {
	return Outputs{
		Mode:            c.mode,
		Target:          c.target,
		Gains:           c.gains,
		EntryCount:      c.entryCount,
		ExitCount:       c.exitCount,
		TransitionCount: c.transition,
		Entry:           c.entry,
		Exit:            c.exit,
		Override:        c.override,
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Reset returns the controller to Modulatory with modulatory gains.
func (c *Controller) Reset() {
	*c = Controller{
		mode:   Modulatory,
		target: Modulatory,
		gains:  TargetGains(Modulatory),
	}
}

// GetLatency returns the controller latency in ticks.
func (c *Controller) GetLatency() int {
	return controllerLatency
}
