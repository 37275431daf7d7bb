package phasectl

import (
	"fmt"

	"github.com/phicore/phasectl/internal/alignment"
	"github.com/phicore/phasectl/internal/coupling"
	"github.com/phicore/phasectl/internal/detect"
	"github.com/phicore/phasectl/internal/drift"
	"github.com/phicore/phasectl/internal/landscape"
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/pipeline"
	"github.com/phicore/phasectl/internal/profile"
	"github.com/phicore/phasectl/internal/spacing"
	"github.com/phicore/phasectl/internal/srbank"
)

// Public aliases for the signal types that cross the package boundary.
type (
	// Q is a Q14 fixed-point scalar.
	Q = mathutil.Q

	// Vector is an oscillator phase vector.
	Vector = srbank.Vector

	// Oscillator is the per-oscillator landscape input.
	Oscillator = landscape.Oscillator

	// Force is the per-oscillator landscape output.
	Force = landscape.Force

	// Sample is one detector output.
	Sample = detect.Sample

	// Phase is the ignition phase code.
	Phase = params.Phase

	// Mode is the coupling mode.
	Mode = coupling.Mode

	// Profile identifies an operating profile.
	Profile = profile.ID

	// ProfileParams are the thirteen interpolated profile parameters.
	ProfileParams = profile.Params
)

// Q14 constants.
const (
	One  = mathutil.One
	Half = mathutil.Half
)

// Band and harmonic counts.
const (
	NumBands     = params.NumBands
	NumHarmonics = params.NumHarmonics
)

// Inputs are the external signals presented on one tick.
// The zero value is a valid, fully undriven input: booleans read false
// and the profile selector reads Normal.
type Inputs struct {
	// ProfileCode is the 3-bit profile selector. Out-of-range codes select
	// Normal.
	ProfileCode uint8

	// TransitionDuration is the profile ramp length in ticks, sampled when
	// ProfileCode changes. Zero means instantaneous.
	TransitionDuration uint16

	// Sync is the external synchrony order parameter.
	Sync Q

	// Power is the external aggregate boundary power.
	Power Q

	// Phase is the external ignition phase.
	Phase Phase

	// Bands are the five band frequencies (OmegaDT), used only when
	// Config.ExternalBands is set.
	Bands [NumBands]Q

	// Reference are the externally driven reference oscillators F1..F5.
	Reference [NumHarmonics]Vector

	// Matched are the internal oscillators matched to each harmonic.
	Matched [NumHarmonics]Vector

	// BetaAmplitude is the masking beta amplitude gating the bank.
	BetaAmplitude Q

	// Stability is the per-harmonic stability used by adaptive
	// enhancement.
	Stability [NumHarmonics]Q

	// Oscillators are the landscape inputs. Missing entries read zero.
	Oscillators []Oscillator
}

// Outputs are the registered control-plane outputs after a tick.
type Outputs struct {
	// Tick counts ticks since the last reset.
	Tick uint64

	// Phase echoes the ignition phase presented on the tick.
	Phase Phase

	// Harmonics are the drifted reference frequencies F1..F5.
	Harmonics [NumHarmonics]Q

	// Bands are the band frequencies fed to the detectors.
	Bands [NumBands]Q

	// Detector outputs as produced by each pipeline.
	Phi0   Sample
	Second Sample
	Direct Sample

	Spacing spacing.Output
	Bank    srbank.Outputs

	// Alignment is the multi-alignment controller output.
	Alignment alignment.Outputs

	// AlignmentTaps mirror the controller's captured stage.
	AlignmentTaps alignment.Taps

	Coupling coupling.Outputs

	// Profile state.
	Params          ProfileParams
	ProfileFrom     Profile
	ProfileTo       Profile
	ProfileProgress Q
	ProfileRamping  bool

	// Forces are the per-oscillator landscape outputs. The slice is owned
	// by the controller and overwritten on every tick.
	Forces []Force
}

// Permitted reports whether ignition is permitted.
func (o *Outputs) Permitted() bool {
	return o.Alignment.Permitted
}

// Access reports consciousness access.
func (o *Outputs) Access() bool {
	return o.Alignment.Access
}

// Controller is the control plane: every component advanced by one shared
// tick. Each Tick first reads every producer's registered output from the
// previous tick, then advances every component, so no component observes
// another's same-tick update.
//
// Controller is not safe for concurrent use.
type Controller struct {
	cfg Config

	harmonics *drift.Bank
	bands     *drift.Bank

	phi0   *detect.Detector
	second *detect.Detector
	direct *detect.Detector

	spacing   *spacing.Index
	landscape *landscape.Landscape
	bank      *srbank.Bank
	align     *alignment.Controller
	coupling  *coupling.Controller
	profiles  *profile.Controller

	// Latency matching in front of the alignment controller.
	plan      *pipeline.Plan
	padPhi0   *pipeline.Delay[detect.Sample]
	padSecond *pipeline.Delay[detect.Sample]
	padDirect *pipeline.Delay[detect.Sample]
	padBank   *pipeline.Delay[srbank.Outputs]

	// stages lists every stateful component, reset together.
	stages []pipeline.Stage

	tick uint64
	out  Outputs
}

func newController(cfg Config) (*Controller, error) {
	harmonics, err := drift.NewHarmonicBank(cfg.TickRate, cfg.Seed, cfg.RandomInit)
	if err != nil {
		return nil, fmt.Errorf("failed to create harmonic drift bank: %w", err)
	}

	bands, err := drift.NewBandBank(cfg.TickRate, cfg.Seed^bandSeedXor, cfg.RandomInit)
	if err != nil {
		return nil, fmt.Errorf("failed to create band drift bank: %w", err)
	}

	land, err := landscape.New(landscape.Config{Oscillators: cfg.Oscillators})
	if err != nil {
		return nil, fmt.Errorf("failed to create landscape: %w", err)
	}

	c := &Controller{
		cfg:       cfg,
		harmonics: harmonics,
		bands:     bands,
		phi0:      detect.NewPhi0(),
		second:    detect.NewSecondBoundary(),
		direct:    detect.NewDirect(),
		spacing:   spacing.New(),
		landscape: land,
		bank:      srbank.New(srbank.Config{Adaptive: cfg.AdaptiveEnhancement}),
		align:     alignment.New(),
		coupling:  coupling.New(),
		profiles:  profile.NewController(),
	}

	// Every branch is measured from the tick its inputs are presented.
	c.plan, err = pipeline.BuildPlan(
		pipeline.Branch{Name: branchPhi0, Latency: c.phi0.GetLatency()},
		pipeline.Branch{Name: branchSecond, Latency: c.second.GetLatency()},
		pipeline.Branch{Name: branchDirect, Latency: c.direct.GetLatency()},
		pipeline.Branch{Name: branchBank, Latency: c.bank.GetLatency()},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build latency plan: %w", err)
	}

	c.padPhi0 = pipeline.NewDelay(c.plan.Padding(branchPhi0), detect.Sample{})
	c.padSecond = pipeline.NewDelay(c.plan.Padding(branchSecond), detect.Sample{})
	c.padDirect = pipeline.NewDelay(c.plan.Padding(branchDirect), detect.Sample{})
	c.padBank = pipeline.NewDelay(c.plan.Padding(branchBank), srbank.Outputs{})

	c.stages = []pipeline.Stage{
		c.harmonics, c.bands,
		c.phi0, c.second, c.direct,
		c.spacing, c.landscape, c.bank,
		c.align, c.coupling, c.profiles,
		c.padPhi0, c.padSecond, c.padDirect, c.padBank,
	}

	c.Reset()

	return c, nil
}

// Tick advances the whole control plane by one tick.
func (c *Controller) Tick(in *Inputs) {
	if in == nil {
		in = &Inputs{}
	}

	// Phase 1: sample every producer's registered output.
	harmonics := c.harmonicOutputs()
	bands := c.bandOutputs(in)

	phi0 := c.padPhi0.Push(c.phi0.Output())
	second := c.padSecond.Push(c.second.Output())
	direct := c.padDirect.Push(c.direct.Output())
	bank := c.padBank.Push(c.bank.Outputs())

	prof := c.profiles.Outputs()
	ramping, progress := c.profiles.Ramping(), c.profiles.Progress()
	current := c.profiles.To()

	bankIn := srbank.Inputs{
		Reference:     in.Reference,
		Matched:       in.Matched,
		BetaAmplitude: in.BetaAmplitude,
		Stability:     in.Stability,
		Omega:         harmonics,
	}

	alignIn := alignment.Inputs{
		Alignment: [alignment.NumInputs]Q{
			phi0.Alignment,
			second.Alignment,
			direct.Alignment,
			bank.Coupling,
		},
		Stability:     second.Auxiliary,
		Quiet:         bank.BetaQuiet,
		BaseThreshold: prof.IgnitionThreshold,
	}

	couplingIn := coupling.Inputs{
		Sync:            in.Sync,
		Power:           in.Power,
		Phase:           in.Phase,
		Profile:         current,
		ProfileRamping:  ramping,
		ProfileProgress: progress,
	}

	// Phase 2: advance every component from the sampled values.
	c.harmonics.Tick()
	if !c.cfg.ExternalBands {
		c.bands.Tick()
	}

	c.phi0.Tick(bands[params.BandTheta], bands[params.BandAlpha], harmonics[params.F1])
	c.second.Tick(bands[params.BandBetaLow], bands[params.BandBetaHigh], harmonics[params.F3])
	c.direct.Tick(bands[params.BandBetaHigh], 0, harmonics[params.F4])

	spaced := c.spacing.Tick(bands)
	c.landscape.Tick(in.Oscillators)
	c.bank.Tick(&bankIn)
	c.align.Tick(&alignIn)
	c.coupling.Tick(&couplingIn)
	c.profiles.Tick(in.ProfileCode, in.TransitionDuration)

	c.tick++
	c.publish(bands, spaced)
	c.out.Phase = in.Phase
}

func (c *Controller) harmonicOutputs() [NumHarmonics]Q {
	var h [NumHarmonics]Q
	copy(h[:], c.harmonics.Outputs())
	return h
}

func (c *Controller) bandOutputs(in *Inputs) [NumBands]Q {
	if c.cfg.ExternalBands {
		return in.Bands
	}
	var b [NumBands]Q
	copy(b[:], c.bands.Outputs())
	return b
}

// publish latches every registered output into the public snapshot.
func (c *Controller) publish(bands [NumBands]Q, spaced spacing.Output) {
	c.out = Outputs{
		Tick:            c.tick,
		Harmonics:       c.harmonicOutputs(),
		Bands:           bands,
		Phi0:            c.phi0.Output(),
		Second:          c.second.Output(),
		Direct:          c.direct.Output(),
		Spacing:         spaced,
		Bank:            c.bank.Outputs(),
		Alignment:       c.align.Outputs(),
		AlignmentTaps:   c.align.Taps(),
		Coupling:        c.coupling.Outputs(),
		Params:          c.profiles.Outputs(),
		ProfileFrom:     c.profiles.From(),
		ProfileTo:       c.profiles.To(),
		ProfileProgress: c.profiles.Progress(),
		ProfileRamping:  c.profiles.Ramping(),
		Forces:          c.landscape.Forces(),
	}
}

// Outputs returns the outputs registered by the last Tick.
func (c *Controller) Outputs() *Outputs {
	return &c.out
}

// Reset forces every component to its default state in one step.
func (c *Controller) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}

	c.tick = 0
	c.publish(c.bandOutputs(&Inputs{}), c.spacing.Output())
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}
