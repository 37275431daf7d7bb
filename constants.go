package phasectl

import (
	"github.com/phicore/phasectl/internal/params"
)

// Tick rate limits. Detector widths and square-root seeds are tuned for
// the reference rate; rates far from it leave the detectors unaligned.
const (
	DefaultTickRate = params.TickRate
	minTickRate     = 1000.0
	maxTickRate     = 16000.0
)

// DefaultSeed is the default drift PRNG seed.
const DefaultSeed = 0xACE1

// bandSeedXor decorrelates the band drift bank from the harmonic bank.
const bandSeedXor = 0x3C3C

// Alignment branch names used in the latency plan.
const (
	branchPhi0   = "phi0"
	branchSecond = "second"
	branchDirect = "direct"
	branchBank   = "bank"
)
