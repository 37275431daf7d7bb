package analysis

// Summary parameters.
const (
	// dutyThreshold splits a signal into active and idle samples. Flags
	// recorded as 0/1 give their duty cycle directly.
	dutyThreshold = 0.5
)

// Spectrum parameters.
const (
	// minSpectrumLength is the shortest signal a spectrum is computed for.
	minSpectrumLength = 4

	// oneSidedScale converts an FFT magnitude to a one-sided amplitude
	// after division by the length.
	oneSidedScale = 2.0
)
