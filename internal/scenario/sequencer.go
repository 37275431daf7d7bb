package scenario

import (
	"github.com/phicore/phasectl/internal/params"
	"github.com/phicore/phasectl/internal/profile"
)

// Sequencer steps through the six ignition phases, holding each for the
// duration the current profile assigns it. It stands in for the external
// phase sequencer when driving the control plane from a scenario.
type Sequencer struct {
	phase   params.Phase
	elapsed uint16
}

// Step advances the sequencer by one tick and returns the phase for the
// tick. A zero-length phase is skipped after a single tick.
func (s *Sequencer) Step(p *profile.Params) params.Phase {
	current := s.phase

	s.elapsed++
	if s.elapsed >= p.Timing(s.phase) {
		s.phase = s.phase.Next()
		s.elapsed = 0
	}

	return current
}

// Phase returns the phase the next Step will report.
func (s *Sequencer) Phase() params.Phase {
	return s.phase
}

// Reset returns the sequencer to the start of the baseline phase.
func (s *Sequencer) Reset() {
	*s = Sequencer{}
}
