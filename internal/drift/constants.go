package drift

// LFSR parameters (x^16 + x^14 + x^13 + x^11 + 1, Galois form)
const (
	lfsrTaps         = 0xB400
	lfsrFallbackSeed = 0xACE1 // Replaces an all-zero seed
)

// Random walk parameters
const (
	minStep = 1 // Smallest slow-tick step in Q14 units
	maxStep = 2 // Largest slow-tick step in Q14 units

	directionBit = 0x0001 // PRNG bit selecting the step direction
	initSeedBits = 8      // High seed bits used for random initial offset
)

// Jitter parameters (triangular, ±jitterSpan)
const (
	jitterSpan     = 5              // Peak jitter in Q14 units
	jitterModulus  = jitterSpan + 1 // Each operand is uniform in [0, jitterSpan]
	jitterHighBits = 8              // Shift selecting the second operand
)

// Per-channel seed derivation
const (
	harmonicSeedStride = 0x1F3D // Seed spacing between reference channels
	bandSeedStride     = 0x2B67 // Seed spacing between band channels
	jitterSeedXor      = 0x5A5A // Jitter stream decorrelation mask
	bandSeedOffset     = 0x0777 // Separates band seeds from harmonic seeds
)

// Channel latency: outputs are registered once per tick.
const channelLatency = 1
