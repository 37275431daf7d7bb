package mathutil

// Q14 format parameters.
// All cross-component signals share this format; products are formed
// in int64 and rescaled by FracBits.
const (
	// FracBits is the number of fractional bits.
	FracBits = 14

	// totalBits is the number of significant bits including sign.
	totalBits = 18

	// One is 1.0 in Q14.
	One Q = 1 << FracBits

	// Half is 0.5 in Q14.
	Half Q = One >> 1

	// MaxQ is the largest representable value (~ +8.0).
	MaxQ Q = 1<<(totalBits-1) - 1

	// MinQ is the smallest representable value (-8.0).
	MinQ Q = -1 << (totalBits - 1)

	// fracMask selects the fractional part of a Q14 value.
	fracMask = int32(One) - 1
)

// Golden ratio constants.
const (
	// Phi is φ ≈ 1.6180339887 in Q14.
	Phi Q = 26510

	// PhiFloat is φ as float64, used only when building tables.
	PhiFloat = 1.6180339887498949
)

// Division and rounding constants.
const (
	// minDivisor is the smallest denominator Div accepts after flooring.
	minDivisor = 1

	// roundingOffset is added before truncation in float conversions.
	roundingOffset = 0.5

	twoPi = 6.283185307179586
)

// Sine table parameters.
const (
	// sineTableBits is log2 of the sine table size.
	sineTableBits = 10

	// sineTableSize is the number of entries spanning one full turn.
	sineTableSize = 1 << sineTableBits

	// sineIndexShift maps a Q14 turn fraction to a table index.
	sineIndexShift = FracBits - sineTableBits
)
