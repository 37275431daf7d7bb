package coupling

import (
	"math/rand/v2"
	"testing"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fuzzTicks   = 60000
	fuzzSeedOne = 3
	fuzzSeedTwo = 11
)

// entryInputs satisfies the entry condition with no exit condition.
func entryInputs() *Inputs {
	return &Inputs{Sync: SyncHigh + 1, Power: PowerEntry + 1}
}

// neutralInputs satisfies neither condition.
func neutralInputs() *Inputs {
	return &Inputs{Sync: (SyncHigh + SyncLow) / 2, Power: (PowerEntry + PowerExit) / 2}
}

// exitInputs satisfies the exit condition.
func exitInputs() *Inputs {
	return &Inputs{Sync: SyncLow - 1, Power: PowerEntry + 1}
}

func tickN(c *Controller, in *Inputs, n int) {
	for range n {
		c.Tick(in)
	}
}

func TestGainConstants(t *testing.T) {
	assert.Equal(t, mathutil.Q(10240), midpointPAC)
	assert.Equal(t, mathutil.Q(8192), midpointHarmonic)
	assert.Equal(t, Gains{PAC: mathutil.One}, TargetGains(Modulatory))
	assert.Equal(t, Gains{PAC: 4096, Harmonic: mathutil.One}, TargetGains(Harmonic))
}

func TestDebounce_OneShort(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), Debounce-1)
	assert.Equal(t, Modulatory, c.Mode(), "DEBOUNCE-1 ticks must not trigger")
	assert.Equal(t, Debounce-1, c.Outputs().EntryCount)

	c.Tick(neutralInputs())
	assert.Equal(t, Modulatory, c.Mode())
	assert.Zero(t, c.Outputs().EntryCount, "counter restarts when the condition drops")

	tickN(c, entryInputs(), Debounce-1)
	assert.Equal(t, Modulatory, c.Mode())
}

func TestDebounce_TriggersOnLastTick(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), Debounce-1)
	require.Equal(t, Modulatory, c.Mode())

	c.Tick(entryInputs())
	assert.Equal(t, Transitioning, c.Mode(), "triggers on the DEBOUNCEth tick")
	assert.True(t, c.Outputs().Entry)
}

func TestDebounce_Saturates(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), 3*Debounce)
	assert.Equal(t, Debounce, c.Outputs().EntryCount)

	c = New()
	tickN(c, exitInputs(), 3*Debounce)
	assert.Equal(t, Debounce, c.Outputs().ExitCount)
}

// TestScenario_SyncEntry holds synchrony and power above entry thresholds:
// Modulatory → Transitioning at tick 2000 → Harmonic at tick 4000.
func TestScenario_SyncEntry(t *testing.T) {
	c := New()
	in := entryInputs()

	for tick := 1; tick <= Debounce+TransitionTicks; tick++ {
		c.Tick(in)
		out := c.Outputs()
		switch {
		case tick < Debounce:
			require.Equal(t, Modulatory, out.Mode, "tick %d", tick)
			require.Equal(t, TargetGains(Modulatory), out.Gains)
		case tick < Debounce+TransitionTicks:
			require.Equal(t, Transitioning, out.Mode, "tick %d", tick)
			require.Equal(t, Harmonic, out.Target)
			require.Equal(t, TargetGains(Transitioning), out.Gains, "midpoint while transitioning")
		default:
			require.Equal(t, Harmonic, out.Mode, "tick %d", tick)
		}
	}
}

func TestHarmonic_GainsSlew(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), Debounce+TransitionTicks)
	require.Equal(t, Harmonic, c.Mode())

	g := c.Outputs().Gains
	assert.Equal(t, midpointPAC-gainStep, g.PAC)
	assert.Equal(t, midpointHarmonic+gainStep, g.Harmonic)

	prev := g
	for range 1100 {
		c.Tick(entryInputs())
		g := c.Outputs().Gains
		require.LessOrEqual(t, g.PAC, prev.PAC)
		require.GreaterOrEqual(t, g.Harmonic, prev.Harmonic)
		require.LessOrEqual(t, prev.PAC-g.PAC, gainStep)
		prev = g
	}
	assert.Equal(t, TargetGains(Harmonic), c.Outputs().Gains)
}

func TestHarmonic_DebouncedExit(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), Debounce+TransitionTicks)
	require.Equal(t, Harmonic, c.Mode())

	tickN(c, exitInputs(), Debounce-1)
	assert.Equal(t, Harmonic, c.Mode())

	c.Tick(exitInputs())
	assert.Equal(t, Transitioning, c.Mode())
	assert.Equal(t, Modulatory, c.Outputs().Target)

	tickN(c, exitInputs(), TransitionTicks)
	assert.Equal(t, Modulatory, c.Mode(), "exit holding does not abort a return")
}

func TestExit_PowerAndDecay(t *testing.T) {
	c := New()
	tickN(c, &Inputs{Sync: SyncHigh + 1, Power: PowerExit - 1}, Debounce)
	assert.True(t, c.Outputs().Exit, "low power is an exit condition")

	c = New()
	tickN(c, &Inputs{Sync: SyncHigh + 1, Power: PowerEntry + 1, Phase: params.PhaseDecay}, Debounce)
	assert.True(t, c.Outputs().Exit, "decay phase is an exit condition")
	assert.True(t, c.Outputs().Entry)
}

func TestIgnitionPhase_Forces(t *testing.T) {
	for _, ph := range []params.Phase{params.PhaseIgnition, params.PhasePlateau, params.PhasePropagation} {
		c := New()
		in := neutralInputs()
		in.Phase = ph
		c.Tick(in)
		assert.Equal(t, Transitioning, c.Mode(), ph.String())
	}

	for _, ph := range []params.Phase{params.PhaseBaseline, params.PhaseCoherence, params.PhaseDecay} {
		c := New()
		in := neutralInputs()
		in.Phase = ph
		c.Tick(in)
		assert.Equal(t, Modulatory, c.Mode(), ph.String())
	}
}

func TestTransition_EarlyAbort(t *testing.T) {
	c := New()
	in := exitInputs()
	in.Phase = params.PhaseIgnition

	c.Tick(in)
	require.Equal(t, Transitioning, c.Mode())

	tickN(c, in, Debounce-2)
	assert.Equal(t, Transitioning, c.Mode())

	c.Tick(in)
	assert.Equal(t, Modulatory, c.Mode(), "debounced exit aborts the transition")
	assert.Equal(t, Modulatory, c.Outputs().Target)
}

func TestOverride(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		override bool
	}{
		{"meditation steady", Inputs{Profile: profile.Meditation}, true},
		{"meditation early ramp", Inputs{Profile: profile.Meditation, ProfileRamping: true, ProfileProgress: overrideProgress}, false},
		{"meditation late ramp", Inputs{Profile: profile.Meditation, ProfileRamping: true, ProfileProgress: overrideProgress + 1}, true},
		{"flow steady", Inputs{Profile: profile.Flow}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.override, Override(&tt.in))
		})
	}
}

func TestOverride_BypassesDebounceAndBlocksExit(t *testing.T) {
	c := New()
	in := exitInputs()
	in.Profile = profile.Meditation

	c.Tick(in)
	assert.Equal(t, Transitioning, c.Mode(), "override bypasses debounce")

	tickN(c, in, TransitionTicks)
	assert.Equal(t, Harmonic, c.Mode(), "exit does not abort under override")

	tickN(c, in, 3*Debounce)
	assert.Equal(t, Harmonic, c.Mode(), "override holds the harmonic mode")
}

func TestProfileRamp_LerpGains(t *testing.T) {
	c := New()
	tickN(c, entryInputs(), Debounce+TransitionTicks)
	require.Equal(t, Harmonic, c.Mode())
	start := c.Outputs().Gains
	target := TargetGains(Harmonic)

	in := entryInputs()
	in.ProfileRamping = true

	in.ProfileProgress = 0
	c.Tick(in)
	assert.Equal(t, start, c.Outputs().Gains, "ramp starts from the snapshot")

	in.ProfileProgress = mathutil.Half
	c.Tick(in)
	want := Gains{
		PAC:      start.PAC + (target.PAC-start.PAC)/2,
		Harmonic: start.Harmonic + (target.Harmonic-start.Harmonic)/2,
	}
	assert.Equal(t, want, c.Outputs().Gains)

	in.ProfileProgress = mathutil.One
	c.Tick(in)
	assert.Equal(t, target, c.Outputs().Gains)
}

// TestNoDirectHarmonic fuzzes the inputs and checks Harmonic is only ever
// reached through a full transition or under the override.
func TestNoDirectHarmonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(fuzzSeedOne, fuzzSeedTwo))
	c := New()

	in := neutralInputs()
	prevMode := c.Mode()
	prevTransition := 0
	for i := range fuzzTicks {
		// Hold inputs for random stretches so debounce windows can fill.
		if rng.IntN(1500) == 0 {
			in = &Inputs{
				Sync:  mathutil.Q(rng.IntN(int(mathutil.One))),
				Power: mathutil.Q(rng.IntN(int(mathutil.One))),
				Phase: params.Phase(rng.IntN(params.NumPhases)),
			}
			if rng.IntN(4) == 0 {
				in.Profile = profile.Meditation
			}
		}

		c.Tick(in)
		out := c.Outputs()
		require.LessOrEqual(t, out.EntryCount, Debounce)
		require.LessOrEqual(t, out.ExitCount, Debounce)
		require.LessOrEqual(t, out.Mode, Harmonic)

		if out.Mode == Harmonic && prevMode != Harmonic {
			require.Equal(t, Transitioning, prevMode, "tick %d: Harmonic entered directly", i)
			require.Equal(t, TransitionTicks-1, prevTransition, "tick %d: transition cut short", i)
		}
		prevMode, prevTransition = out.Mode, out.TransitionCount
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "modulatory", Modulatory.String())
	assert.Equal(t, "transitioning", Transitioning.String())
	assert.Equal(t, "harmonic", Harmonic.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

// TestController_Reset verifies Reset() makes a used controller match a fresh one.
func TestController_Reset(t *testing.T) {
	used := New()
	tickN(used, entryInputs(), Debounce+TransitionTicks+10)
	used.Reset()

	assert.Equal(t, New(), used)
	assert.Equal(t, controllerLatency, used.GetLatency())
}

// BenchmarkController_Tick benchmarks one controller update.
func BenchmarkController_Tick(b *testing.B) {
	c := New()
	in := entryInputs()
	for b.Loop() {
		c.Tick(in)
	}
}
