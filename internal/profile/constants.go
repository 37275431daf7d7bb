package profile

// selectorMask keeps the 3-bit profile selector.
const selectorMask = 0x07

// minDuration replaces a zero ramp duration (instant transition).
const minDuration = 1

// controllerLatency is the registered output delay in ticks.
const controllerLatency = 1

// rows is the profile table in real units. Column order follows Params.
var rows = [NumProfiles]struct {
	muTheta, muAlpha, muBeta, muGamma float64
	pacDepth, resetStrength, threshold float64

	baseline, coherence, ignition, plateau, propagation, decay uint16
}{
	Normal:      {2.0, 2.0, 2.0, 2.0, 0.5, 1.0, 0.5, 2000, 1000, 400, 800, 600, 1200},
	Anesthesia:  {1.0, 3.0, 1.0, 0.5, 0.1, 0.1, 0.8, 4000, 2000, 200, 200, 200, 2400},
	Psychedelic: {2.0, 1.0, 2.5, 3.0, 0.3, 0.3, 0.3, 1000, 600, 600, 1200, 1000, 800},
	Flow:        {2.0, 1.5, 2.0, 2.5, 0.7, 1.5, 0.4, 1600, 800, 500, 1600, 800, 1000},
	Meditation:  {2.5, 2.5, 1.5, 1.5, 0.9, 2.0, 0.45, 3000, 2000, 400, 2400, 1200, 1600},
}
