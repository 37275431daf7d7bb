package phasectl

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// traceColumns names the signals exported by TraceRow, following the
// testbench capture layout. Q14 signals are exported in real units.
var traceColumns = []string{
	"state", "state_from", "progress", "phase",
	"mode", "pac_gain", "harmonic_gain",
	"overall", "threshold", "permitted", "access",
	"phi0_align", "phi0_crystal", "second_align", "direct_align",
	"bank_coupling", "beta_quiet", "sr_mask",
	"spacing_index", "spacing_delta", "spacing_locked",
	"sr_f1", "sr_f2", "sr_f3", "sr_f4", "sr_f5",
	"mu_theta", "mu_alpha", "mu_beta", "mu_gamma", "pac_depth", "reset_strength",
	"landscape_danger",
}

// TraceColumns returns the column names of TraceRow.
func TraceColumns() []string {
	return traceColumns
}

// TraceRow appends the traced signals of o to dst, in TraceColumns order.
func (o *Outputs) TraceRow(dst []float64) []float64 {
	danger := 0
	for _, f := range o.Forces {
		if f.Danger {
			danger++
		}
	}

	return append(dst,
		float64(o.ProfileTo), float64(o.ProfileFrom), o.ProfileProgress.Float(), float64(o.Phase),
		float64(o.Coupling.Mode), o.Coupling.Gains.PAC.Float(), o.Coupling.Gains.Harmonic.Float(),
		o.Alignment.Overall.Float(), o.Alignment.Threshold.Float(), flag(o.Alignment.Permitted), flag(o.Alignment.Access),
		o.Phi0.Alignment.Float(), o.Phi0.Auxiliary.Float(), o.Second.Alignment.Float(), o.Direct.Alignment.Float(),
		o.Bank.Coupling.Float(), flag(o.Bank.BetaQuiet), float64(o.Bank.Mask),
		o.Spacing.Instant.Float(), o.Spacing.Delta.Float(), flag(o.Spacing.Locked),
		o.Harmonics[0].Float(), o.Harmonics[1].Float(), o.Harmonics[2].Float(), o.Harmonics[3].Float(), o.Harmonics[4].Float(),
		o.Params.MuTheta.Float(), o.Params.MuAlpha.Float(), o.Params.MuBeta.Float(), o.Params.MuGamma.Float(),
		o.Params.PACDepth.Float(), o.Params.ResetStrength.Float(),
		float64(danger),
	)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Hz converts an OmegaDT frequency to Hz at the controller tick rate.
func (c *Controller) Hz(omega Q) float64 {
	return mathutil.HzFromOmega(omega, c.cfg.TickRate)
}
