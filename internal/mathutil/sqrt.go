package mathutil

import (
	"math/bits"
)

// NewtonSqrt approximates √p with a fixed number of Newton-Raphson
// refinements x ← (x + p/x)/2, starting from (p >> shift) + bias.
//
// This is the detector form: cheap and fixed-latency, accurate only when
// shift and bias are tuned to the expected range of p. The estimate is
// kept ≥ 1 so the division is always defined.
func NewtonSqrt(p int64, shift uint, bias int64, iterations int) int64 {
	if p <= 0 {
		return 0
	}

	x := (p >> shift) + bias
	if x < 1 {
		x = 1
	}

	for range iterations {
		x = (x + p/x) / 2
		if x < 1 {
			x = 1
		}
	}

	return x
}

// Isqrt returns ⌊√p⌋ for any non-negative p. Negative input yields 0.
func Isqrt(p int64) int64 {
	if p <= 0 {
		return 0
	}

	// 2^⌈L/2⌉ is an upper bound on √p; Newton then decreases monotonically.
	x := int64(1) << ((bits.Len64(uint64(p)) + 1) / 2)
	for {
		y := (x + p/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// Magnitude returns |(x, y)| in Q14. x²+y² is Q28, so its root is Q14.
func Magnitude(x, y Q) Q {
	sq := int64(x)*int64(x) + int64(y)*int64(y)
	return Sat(Isqrt(sq))
}

// GeometricMean returns √(a×b) for non-negative Q14 inputs using the
// exact integer root. Negative inputs yield 0.
func GeometricMean(a, b Q) Q {
	if a <= 0 || b <= 0 {
		return 0
	}
	return Sat(Isqrt(int64(a) * int64(b)))
}
