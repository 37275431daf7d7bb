// Package scenario drives the control plane with input sequences: a set
// of built-in scenarios covering the main operating paths, and Lua
// scripts for anything else.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/phicore/phasectl"
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/profile"
)

// Common errors returned by scenarios.
var (
	// ErrUnknownScenario indicates a built-in name that does not exist.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrScript indicates a Lua script that failed to load or run.
	ErrScript = errors.New("scenario script error")
)

// Scenario produces the inputs of every tick.
type Scenario interface {
	// Name identifies the scenario.
	Name() string

	// Ticks is the scenario's natural length.
	Ticks() int

	// Step updates in for the given tick. prev holds the outputs
	// registered by the previous tick. Fields Step leaves alone keep
	// their previous values.
	Step(tick int, prev *phasectl.Outputs, in *phasectl.Inputs) error
}

// Observer receives the outputs after every tick.
type Observer func(out *phasectl.Outputs) error

// Run drives c with s for ticks ticks, or s.Ticks() when ticks ≤ 0.
func Run(c *phasectl.Controller, s Scenario, ticks int, observe Observer) error {
	if ticks <= 0 {
		ticks = s.Ticks()
	}

	in := &phasectl.Inputs{
		Oscillators: make([]phasectl.Oscillator, c.Config().Oscillators),
	}

	for tick := range ticks {
		prev := c.Outputs()
		if err := s.Step(tick, prev, in); err != nil {
			return fmt.Errorf("scenario %s tick %d: %w", s.Name(), tick, err)
		}
		network(prev, in.Oscillators)

		c.Tick(in)

		if observe != nil {
			if err := observe(c.Outputs()); err != nil {
				return err
			}
		}
	}

	return nil
}

// network derives the landscape inputs from the band frequencies: each
// oscillator sits on one band, its exponent measured in powers of φ from
// theta and spread a little within the band.
func network(prev *phasectl.Outputs, osc []phasectl.Oscillator) {
	theta := prev.Bands[params.BandTheta]
	for i := range osc {
		band := i % params.NumBands
		ratio := mathutil.Div(prev.Bands[band], theta, ratioFloor)

		n := 0.0
		if r := ratio.Float(); r > 0 {
			n = math.Log(r) / math.Log(mathutil.PhiFloat)
		}
		n += spreadStep * float64(i/params.NumBands)

		osc[i] = phasectl.Oscillator{
			Exponent: mathutil.FromFloat(n),
			Ratio:    ratio,
		}
	}
}

// setCoherence drives the reference and matched oscillators either in
// phase (coherent) or in quadrature (incoherent).
func setCoherence(in *phasectl.Inputs, coherent bool) {
	m := mathutil.FromFloat(matchedAmplitude)
	for h := range phasectl.NumHarmonics {
		in.Reference[h] = phasectl.Vector{X: mathutil.One}
		if coherent {
			in.Matched[h] = phasectl.Vector{X: m}
		} else {
			in.Matched[h] = phasectl.Vector{Y: m}
		}
	}
}

// builtin is a scenario defined by a step function.
type builtin struct {
	name  string
	ticks int
	step  func(b *builtin, tick int, prev *phasectl.Outputs, in *phasectl.Inputs)
	seq   Sequencer
}

func (b *builtin) Name() string { return b.name }
func (b *builtin) Ticks() int   { return b.ticks }

func (b *builtin) Step(tick int, prev *phasectl.Outputs, in *phasectl.Inputs) error {
	if tick == 0 {
		b.seq.Reset()
	}
	b.step(b, tick, prev, in)
	return nil
}

var builtins = map[string]func() *builtin{
	"steady":         newSteady,
	"profile-sweep":  newProfileSweep,
	"sync-entry":     newSyncEntry,
	"ignition-cycle": newIgnitionCycle,
	"drift-soak":     newDriftSoak,
}

// Builtins returns the built-in scenario names in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a fresh instance of a built-in scenario.
func Lookup(name string) (Scenario, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownScenario, name, Builtins())
	}
	return ctor(), nil
}

// rest holds Normal with neither coupling condition and a quiet,
// coherent reference field.
func rest(in *phasectl.Inputs) {
	in.ProfileCode = uint8(profile.Normal)
	in.Sync, in.Power = syncRest, powerRest
	in.Phase = params.PhaseBaseline
	in.BetaAmplitude = betaQuiet
	setCoherence(in, true)
}

func newSteady() *builtin {
	return &builtin{
		name:  "steady",
		ticks: 5 * int(params.TickRate),
		step: func(_ *builtin, _ int, _ *phasectl.Outputs, in *phasectl.Inputs) {
			rest(in)
		},
	}
}

// newProfileSweep dwells on every profile in turn, ramping between them.
func newProfileSweep() *builtin {
	return &builtin{
		name:  "profile-sweep",
		ticks: profile.NumProfiles * sweepHold,
		step: func(_ *builtin, tick int, _ *phasectl.Outputs, in *phasectl.Inputs) {
			rest(in)
			in.ProfileCode = uint8((tick / sweepHold) % profile.NumProfiles)
			in.TransitionDuration = sweepRamp
		},
	}
}

// newSyncEntry rests, drives synchrony and power above the entry
// thresholds, then drops synchrony below the exit threshold.
func newSyncEntry() *builtin {
	return &builtin{
		name:  "sync-entry",
		ticks: syncRestTicks + 2*syncHoldTicks,
		step: func(_ *builtin, tick int, _ *phasectl.Outputs, in *phasectl.Inputs) {
			rest(in)
			switch {
			case tick < syncRestTicks:
			case tick < syncRestTicks+syncHoldTicks:
				in.Sync, in.Power = syncEntry, powerEntry
			default:
				in.Sync = 0
			}
		},
	}
}

// newIgnitionCycle runs the phase sequencer under the Flow profile.
func newIgnitionCycle() *builtin {
	return &builtin{
		name:  "ignition-cycle",
		ticks: 6 * int(params.TickRate),
		step: func(b *builtin, _ int, prev *phasectl.Outputs, in *phasectl.Inputs) {
			rest(in)
			in.ProfileCode = uint8(profile.Flow)
			in.Phase = b.seq.Step(&prev.Params)
			if in.Phase == params.PhaseDecay {
				in.BetaAmplitude = betaLoud
			}
		},
	}
}

// newDriftSoak leaves the control plane to its drift generators with the
// quiet gate toggling slowly.
func newDriftSoak() *builtin {
	return &builtin{
		name:  "drift-soak",
		ticks: 30 * int(params.TickRate),
		step: func(_ *builtin, tick int, _ *phasectl.Outputs, in *phasectl.Inputs) {
			rest(in)
			if (tick/quietToggle)%2 == 1 {
				in.BetaAmplitude = betaLoud
				setCoherence(in, false)
			}
		},
	}
}
