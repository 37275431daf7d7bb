// Package alignment implements the multi-alignment controller.
//
// Four alignment inputs are weighted and summed into an overall score
// that lowers the ignition threshold. Ignition permission requires three
// gating comparisons; consciousness access additionally requires the
// third alignment. The comparisons a decision depends on are captured
// together in stage 1, and the decision is formed from that captured
// stage one tick later.
package alignment

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// Inputs are the per-tick controller inputs.
type Inputs struct {
	// Alignment holds the φ⁰, second boundary and direct alignments and
	// the reference bank coupling, in weight order.
	Alignment [NumInputs]mathutil.Q

	// Stability is the second-boundary stability score.
	Stability mathutil.Q

	// Quiet is the external quiet gate. Undriven means false.
	Quiet bool

	// BaseThreshold is the profile ignition threshold.
	BaseThreshold mathutil.Q
}

// Flags are the gating comparisons captured in stage 1.
type Flags struct {
	Primary   bool // first alignment ≥ 0.3
	Stability bool // stability ≥ 0.2
	Quiet     bool
	Access    bool // third alignment ≥ 0.3
}

// Ignition reports the conjunction of the three ignition gates.
func (f Flags) Ignition() bool {
	return f.Primary && f.Stability && f.Quiet
}

// stage1 registers the weighted terms and the captured flags.
type stage1 struct {
	weighted [NumInputs]mathutil.Q
	base     mathutil.Q
	flags    Flags
}

// stage2 registers the combined score and the permission decision.
type stage2 struct {
	overall   mathutil.Q
	scale     mathutil.Q
	threshold mathutil.Q
	permitted bool
	access    bool // third gate carried to stage 3
}

// Outputs are the registered controller outputs.
type Outputs struct {
	Overall mathutil.Q

	// ThresholdScale is in [One, 1.5×One], 1.5×One after reset.
	ThresholdScale mathutil.Q

	// Threshold is BaseThreshold × ThresholdScale. It reads 0 until the
	// first base threshold has reached stage 2.
	Threshold mathutil.Q
	Permitted      bool
	Access         bool
}

// Taps expose the internal pipeline registers for verification.
type Taps struct {
	Weighted [NumInputs]mathutil.Q
	Flags    Flags
}

// Controller is the multi-alignment controller.
type Controller struct {
	s1     stage1
	s2     stage2
	access bool
}

// New creates a controller in its reset state.
func New() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Tick advances all three stages from their previous-tick registers.
func (c *Controller) Tick(in *Inputs) {
	c.access = c.s2.permitted && c.s2.access
	c.s2 = combine(&c.s1)
	c.s1 = capture(in)
}

func capture(in *Inputs) stage1 {
	s := stage1{
		base: in.BaseThreshold,
		flags: Flags{
			Primary:   in.Alignment[0] >= primaryGate,
			Stability: in.Stability >= stabilityGate,
			Quiet:     in.Quiet,
			Access:    in.Alignment[2] >= accessGate,
		},
	}
	for i, a := range in.Alignment {
		s.weighted[i] = mathutil.Mul(mathutil.ClampUnit(a), Weights[i])
	}
	return s
}

func combine(s *stage1) stage2 {
	var sum int64
	for _, w := range s.weighted {
		sum += int64(w)
	}
	overall := mathutil.ClampUnitWide(sum)
	scale := ThresholdScale(overall)

	return stage2{
		overall:   overall,
		scale:     scale,
		threshold: mathutil.Mul(s.base, scale),
		permitted: s.flags.Ignition(),
		access:    s.flags.Access,
	}
}

// ThresholdScale returns 1.5 − 0.5×overall.
func ThresholdScale(overall mathutil.Q) mathutil.Q {
	return thresholdScaleBase - mathutil.Mul(thresholdScaleSlope, mathutil.ClampUnit(overall))
}

// Outputs returns the registered outputs.
func (c *Controller) Outputs() Outputs {
	return Outputs{
		Overall:        c.s2.overall,
		ThresholdScale: c.s2.scale,
		Threshold:      c.s2.threshold,
		Permitted:      c.s2.permitted,
		Access:         c.access,
	}
}

// Taps returns the stage-1 registers.
func (c *Controller) Taps() Taps {
	return Taps{Weighted: c.s1.weighted, Flags: c.s1.flags}
}

// Reset clears every stage. Stage 2 restarts at the zero-alignment scale.
func (c *Controller) Reset() {
	*c = Controller{s2: stage2{scale: thresholdScaleBase}}
}

// GetLatency returns the access latency, the deepest output.
func (c *Controller) GetLatency() int {
	return AccessLatency
}
