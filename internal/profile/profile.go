// Package profile holds the operating profile table and the transition
// controller that ramps the thirteen profile parameters from one
// profile to the next.
package profile

import (
	"fmt"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
)

// ID names an operating profile.
type ID uint8

// Operating profiles, in selector order.
const (
	Normal ID = iota
	Anesthesia
	Psychedelic
	Flow
	Meditation

	// NumProfiles is the number of defined profiles.
	NumProfiles = 5
)

var names = [NumProfiles]string{"normal", "anesthesia", "psychedelic", "flow", "meditation"}

// String returns the profile name.
func (id ID) String() string {
	if id < NumProfiles {
		return names[id]
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Select maps a 3-bit selector code to a profile. Undefined codes select
// Normal.
func Select(code uint8) ID {
	id := ID(code & selectorMask)
	if id >= NumProfiles {
		return Normal
	}
	return id
}

// Parse returns the profile with the given name.
func Parse(name string) (ID, error) {
	for i, n := range names {
		if n == name {
			return ID(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown profile %q", name)
}

// Params are the thirteen profile parameters.
type Params struct {
	// Gains (signed Q14).
	MuTheta       mathutil.Q
	MuAlpha       mathutil.Q
	MuBeta        mathutil.Q
	MuGamma       mathutil.Q
	PACDepth      mathutil.Q
	ResetStrength mathutil.Q

	// IgnitionThreshold is the base threshold of the alignment controller.
	IgnitionThreshold mathutil.Q

	// Phase timings in ticks.
	Baseline    uint16
	Coherence   uint16
	Ignition    uint16
	Plateau     uint16
	Propagation uint16
	Decay       uint16
}

// Timing returns the duration of an ignition phase.
func (p *Params) Timing(phase params.Phase) uint16 {
	switch phase {
	case params.PhaseBaseline:
		return p.Baseline
	case params.PhaseCoherence:
		return p.Coherence
	case params.PhaseIgnition:
		return p.Ignition
	case params.PhasePlateau:
		return p.Plateau
	case params.PhasePropagation:
		return p.Propagation
	case params.PhaseDecay:
		return p.Decay
	default:
		return 0
	}
}

var table = buildTable()

func buildTable() [NumProfiles]Params {
	var t [NumProfiles]Params
	for i, r := range rows {
		t[i] = Params{
			MuTheta:           mathutil.FromFloat(r.muTheta),
			MuAlpha:           mathutil.FromFloat(r.muAlpha),
			MuBeta:            mathutil.FromFloat(r.muBeta),
			MuGamma:           mathutil.FromFloat(r.muGamma),
			PACDepth:          mathutil.FromFloat(r.pacDepth),
			ResetStrength:     mathutil.FromFloat(r.resetStrength),
			IgnitionThreshold: mathutil.FromFloat(r.threshold),
			Baseline:          r.baseline,
			Coherence:         r.coherence,
			Ignition:          r.ignition,
			Plateau:           r.plateau,
			Propagation:       r.propagation,
			Decay:             r.decay,
		}
	}
	return t
}

// Lookup returns the constant parameters of a profile. Undefined IDs
// return Normal.
func Lookup(id ID) Params {
	if id >= NumProfiles {
		id = Normal
	}
	return table[id]
}

// Interpolate returns start + (target−start)×t/d for every parameter.
// Gains use the signed lerp, timings the unsigned one.
func Interpolate(start, target *Params, t, d uint32) Params {
	return Params{
		MuTheta:           mathutil.Lerp(start.MuTheta, target.MuTheta, t, d),
		MuAlpha:           mathutil.Lerp(start.MuAlpha, target.MuAlpha, t, d),
		MuBeta:            mathutil.Lerp(start.MuBeta, target.MuBeta, t, d),
		MuGamma:           mathutil.Lerp(start.MuGamma, target.MuGamma, t, d),
		PACDepth:          mathutil.Lerp(start.PACDepth, target.PACDepth, t, d),
		ResetStrength:     mathutil.Lerp(start.ResetStrength, target.ResetStrength, t, d),
		IgnitionThreshold: mathutil.Lerp(start.IgnitionThreshold, target.IgnitionThreshold, t, d),
		Baseline:          mathutil.LerpUnsigned(start.Baseline, target.Baseline, t, d),
		Coherence:         mathutil.LerpUnsigned(start.Coherence, target.Coherence, t, d),
		Ignition:          mathutil.LerpUnsigned(start.Ignition, target.Ignition, t, d),
		Plateau:           mathutil.LerpUnsigned(start.Plateau, target.Plateau, t, d),
		Propagation:       mathutil.LerpUnsigned(start.Propagation, target.Propagation, t, d),
		Decay:             mathutil.LerpUnsigned(start.Decay, target.Decay, t, d),
	}
}
