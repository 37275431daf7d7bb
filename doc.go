// Package phasectl implements the alignment-detection, mode-arbitration and
// state-transition control plane of a fixed-point oscillator network
// entrained to a slowly drifting quasi-periodic reference.
//
// The control plane does not generate the oscillator signals. It decides
// when and how strongly oscillators couple, ramps the network between five
// operating profiles, and steers drifting oscillators away from unstable
// rational frequency ratios.
//
// # Features
//
//   - Drift generators: bounded, reflecting random walks plus triangular
//     jitter around each reference harmonic and band center
//   - Boundary detectors: geometric-mean and direct boundaries scored against
//     the reference with a Gaussian proximity approximation
//   - Harmonic spacing index with a slow baseline and a golden-ratio lock flag
//   - φⁿ energy landscape with harmonic-catastrophe escape corrections
//   - Reference harmonic bank: coherence, quiet-gated gains and enhancement
//   - Multi-alignment controller with a pipelined ignition decision
//   - Hysteretic, debounced coupling-mode state machine with gain interpolation
//   - Profile transition controller ramping thirteen parameters
//
// # Quick Start
//
//	ctrl, err := phasectl.New(phasectl.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in := &phasectl.Inputs{ProfileCode: 4, TransitionDuration: 4000}
//	for range 8000 {
//	    ctrl.Tick(in)
//	}
//
//	out := ctrl.Outputs()
//	fmt.Println(out.Coupling.Mode, out.Permitted(), out.Params.MuTheta.Float())
//
// # Fixed Point
//
// Every real-valued signal is a [Q]: 18-bit signed, 14 fractional bits,
// so [One] is 16384. Frequencies are phase advance per tick (OmegaDT).
// Scores, gains and coherences are clamped to [0, One]; divisions floor
// their denominators. No tick path returns an error.
//
// # Timing
//
// One call to [Controller.Tick] advances every component. Each tick first
// samples the registered outputs of the previous tick and only then
// advances, so components never see a partially updated neighbour.
// Component pipelines have fixed, known latencies; the faster alignment
// branches are padded so the alignment controller always combines values
// describing the same input tick. [Controller.GetInfo] reports the
// resulting end-to-end ignition and access latencies.
//
// Reset forces every component to its default in one step.
//
// # Thread Safety
//
// A [Controller] is a single synchronous domain and is not safe for
// concurrent use. Separate controllers share no state.
package phasectl
