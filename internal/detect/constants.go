package detect

// Pipeline depths in ticks.
const (
	geometricStages = 5 // product, sqrt, detuning, gaussian, auxiliary
	directStages    = 3 // detuning, gaussian, auxiliary
)

// Newton-Raphson refinement count for the boundary square root.
const sqrtIterations = 2

// maxShift bounds the initial-guess shift so the guess stays non-trivial.
const maxShift = 30

// crystallinityFloor is the smallest low×φ denominator (Q14 units).
const crystallinityFloor = 1

// φ⁰ boundary detector: theta × alpha against reference F1.
const (
	phi0Shift = 8
	phi0Bias  = 64
	phi0Sigma = 16
)

// Second boundary detector: beta-low × beta-high against reference F3.
const (
	secondShift = 10
	secondBias  = 256
	secondSigma = 20
)

// Direct coupling detector: beta-high against reference F4.
const directSigma = 12
