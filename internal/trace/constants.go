package trace

// WAV export parameters.
const (
	// wavBitDepth is the PCM sample width.
	wavBitDepth = 16

	// wavFormatPCM is the RIFF audio format code for integer PCM.
	wavFormatPCM = 1

	// wavMaxValue is the largest 16-bit sample magnitude.
	wavMaxValue = 32767.0

	// FullScale is the signal magnitude mapped to a full-scale sample:
	// the Q14 range is [-8, +8).
	FullScale = 8.0
)

// CSV export parameters.
const (
	// SampleColumn is the first CSV column, the tick index.
	SampleColumn = "sample"

	// floatFormat and floatPrecision render values with Q14 resolution.
	floatFormat    = 'f'
	floatPrecision = 6
)

// defaultRowCapacity is the initial row capacity of a new trace.
const defaultRowCapacity = 4096
