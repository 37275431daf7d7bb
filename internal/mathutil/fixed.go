// Package mathutil provides the Q14 fixed-point arithmetic shared by every
// stage of the control plane.
//
// Every operation saturates instead of wrapping, and every division floors
// its denominator instead of failing. Tick paths therefore never need an
// error return.
package mathutil

import (
	"math"
)

// Q is a signed fixed-point scalar with 14 fractional bits, saturated to
// 18 significant bits ([-8.0, +8.0), resolution 1/16384).
type Q int32

// Sat saturates a wide intermediate into the 18-bit Q14 range.
func Sat(v int64) Q {
	if v > int64(MaxQ) {
		return MaxQ
	}
	if v < int64(MinQ) {
		return MinQ
	}
	return Q(v)
}

// FromFloat converts a real value to Q14 with rounding and saturation.
func FromFloat(f float64) Q {
	if math.IsNaN(f) {
		return 0
	}
	return Sat(int64(math.Floor(f*float64(One) + roundingOffset)))
}

// Float returns the real value represented by q.
func (q Q) Float() float64 {
	return float64(q) / float64(One)
}

// Add returns a+b saturated.
func Add(a, b Q) Q {
	return Sat(int64(a) + int64(b))
}

// Sub returns a-b saturated.
func Sub(a, b Q) Q {
	return Sat(int64(a) - int64(b))
}

// Mul returns a×b rescaled to Q14. The product is formed at double width.
func Mul(a, b Q) Q {
	return Sat((int64(a) * int64(b)) >> FracBits)
}

// Div returns num/den in Q14. The magnitude of den is floored to floor
// (at least 1) keeping its sign; a zero denominator is treated as +floor.
func Div(num, den, floor Q) Q {
	f := int64(floor)
	if f < minDivisor {
		f = minDivisor
	}

	d := int64(den)
	switch {
	case d >= 0 && d < f:
		d = f
	case d < 0 && -d < f:
		d = -f
	}

	return Sat((int64(num) << FracBits) / d)
}

// Abs returns |a| saturated (|MinQ| saturates to MaxQ).
func Abs(a Q) Q {
	if a < 0 {
		return Sat(-int64(a))
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi Q) Q {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampUnit limits v to [0, One].
func ClampUnit(v Q) Q {
	return Clamp(v, 0, One)
}

// ClampUnitWide limits a wide intermediate to [0, One].
func ClampUnitWide(v int64) Q {
	if v < 0 {
		return 0
	}
	if v > int64(One) {
		return One
	}
	return Q(v)
}

// OmegaFromHz converts a physical frequency to phase advance per tick.
func OmegaFromHz(hz, tickRate float64) Q {
	if tickRate <= 0 {
		return 0
	}
	return FromFloat(twoPi * hz / tickRate)
}

// HzFromOmega converts a phase advance per tick back to Hz.
func HzFromOmega(omega Q, tickRate float64) float64 {
	return omega.Float() * tickRate / twoPi
}
