package phasectl

import (
	"errors"
	"fmt"

	"github.com/phicore/phasectl/internal/alignment"
	"github.com/phicore/phasectl/internal/landscape"
)

// Config holds the control plane configuration.
type Config struct {
	// TickRate is the update rate in ticks per second. Frequencies are
	// converted to phase advance per tick at this rate.
	TickRate float64

	// Seed seeds every drift PRNG stream. Zero is replaced by a fixed
	// non-zero seed.
	Seed uint16

	// RandomInit starts every drift channel at a seed-derived offset
	// inside its bound instead of at its center.
	RandomInit bool

	// Oscillators is the number of oscillators the energy landscape
	// evaluates per tick.
	Oscillators int

	// AdaptiveEnhancement computes the reference bank enhancement from the
	// per-harmonic stability inputs instead of the fixed table.
	AdaptiveEnhancement bool

	// ExternalBands takes the five band frequencies from Inputs.Bands
	// instead of the internal band drift generators.
	ExternalBands bool
}

// Common errors returned by the control plane.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid phasectl configuration")
)

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		TickRate:    DefaultTickRate,
		Seed:        DefaultSeed,
		Oscillators: landscape.DefaultOscillators,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TickRate < minTickRate || c.TickRate > maxTickRate {
		return fmt.Errorf("%w: tick rate must be %v-%v, got %v",
			ErrInvalidConfig, minTickRate, maxTickRate, c.TickRate)
	}

	lc := landscape.Config{Oscillators: c.Oscillators}
	if err := lc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// New creates a control plane with the specified configuration.
func New(config *Config) (*Controller, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newController(*config)
}

// ComponentInfo describes one pipelined component.
type ComponentInfo struct {
	// Name identifies the component.
	Name string

	// Latency is the component's own pipeline depth in ticks.
	Latency int

	// Padding is the delay added in front of the alignment controller to
	// match the slowest alignment branch. Zero for components that do not
	// feed it.
	Padding int
}

// Info returns information about a control plane instance.
type Info struct {
	// TickRate is the configured update rate.
	TickRate float64

	// Oscillators is the landscape network size.
	Oscillators int

	// Components lists every pipelined component in dependency order.
	Components []ComponentInfo

	// AlignedLatency is the depth of the slowest alignment branch,
	// measured from an external input to the registered producer output.
	AlignedLatency int

	// IgnitionLatency and AccessLatency are end-to-end: the number of
	// ticks from a change on an alignment branch input to the change
	// being visible on Permitted and Access.
	IgnitionLatency int
	AccessLatency   int
}

// GetInfo returns information about the control plane.
func (c *Controller) GetInfo() Info {
	comps := []ComponentInfo{
		{Name: "harmonic-drift", Latency: c.harmonics.GetLatency()},
		{Name: "band-drift", Latency: c.bands.GetLatency()},
		{Name: branchPhi0, Latency: c.phi0.GetLatency(), Padding: c.plan.Padding(branchPhi0)},
		{Name: branchSecond, Latency: c.second.GetLatency(), Padding: c.plan.Padding(branchSecond)},
		{Name: branchDirect, Latency: c.direct.GetLatency(), Padding: c.plan.Padding(branchDirect)},
		{Name: "spacing", Latency: c.spacing.GetLatency()},
		{Name: "landscape", Latency: c.landscape.GetLatency()},
		{Name: branchBank, Latency: c.bank.GetLatency(), Padding: c.plan.Padding(branchBank)},
		{Name: "alignment", Latency: c.align.GetLatency()},
		{Name: "coupling", Latency: c.coupling.GetLatency()},
		{Name: "profile", Latency: c.profiles.GetLatency()},
	}

	return Info{
		TickRate:        c.cfg.TickRate,
		Oscillators:     c.landscape.Len(),
		Components:      comps,
		AlignedLatency:  c.plan.GetTotalLatency(),
		IgnitionLatency: c.plan.GetTotalLatency() + alignment.IgnitionLatency,
		AccessLatency:   c.plan.GetTotalLatency() + alignment.AccessLatency,
	}
}
