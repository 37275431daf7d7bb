package mathutil

import (
	"math"
)

// sineTable holds one full turn of sin(2πi/N) in Q14.
var sineTable = buildSineTable()

func buildSineTable() [sineTableSize]Q {
	var t [sineTableSize]Q
	for i := range sineTableSize {
		t[i] = FromFloat(math.Sin(twoPi * float64(i) / sineTableSize))
	}
	return t
}

// SinTurns returns sin(2π·x) where x is expressed in turns (Q14).
// Only the fractional part of x matters; negative x wraps correctly.
func SinTurns(x Q) Q {
	idx := (int32(x) & fracMask) >> sineIndexShift
	return sineTable[idx]
}

// Frac returns the fractional part of x in [0, One).
func Frac(x Q) Q {
	return Q(int32(x) & fracMask)
}
