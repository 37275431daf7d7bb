package params

import (
	"fmt"
)

// Phase is the 3-bit ignition phase code driven by the phase sequencer.
type Phase uint8

// Ignition phases in sequence order.
const (
	PhaseBaseline Phase = iota
	PhaseCoherence
	PhaseIgnition
	PhasePlateau
	PhasePropagation
	PhaseDecay

	// NumPhases is the number of defined phase codes.
	NumPhases = 6
)

var phaseNames = [NumPhases]string{
	"baseline", "coherence", "ignition", "plateau", "propagation", "decay",
}

// String returns the phase name.
func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// IgnitionActive reports whether p is one of the phases that force the
// harmonic coupling mode: ignition, plateau or propagation.
func (p Phase) IgnitionActive() bool {
	return p >= PhaseIgnition && p <= PhasePropagation
}

// Next returns the following phase, wrapping decay back to baseline.
func (p Phase) Next() Phase {
	if p >= PhaseDecay {
		return PhaseBaseline
	}
	return p + 1
}
