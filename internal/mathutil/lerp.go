package mathutil

// Lerp interpolates a signed Q14 value: start + (target−start)×t/d.
// t ≥ d (or d == 0) returns target exactly.
func Lerp(start, target Q, t, d uint32) Q {
	if d == 0 || t >= d {
		return target
	}
	delta := int64(target) - int64(start)
	return Sat(int64(start) + delta*int64(t)/int64(d))
}

// LerpUnsigned interpolates an unsigned 16-bit quantity such as a tick
// count. The difference is taken in the direction of travel so no
// intermediate underflows.
func LerpUnsigned(start, target uint16, t, d uint32) uint16 {
	if d == 0 || t >= d {
		return target
	}
	if target >= start {
		step := uint64(target-start) * uint64(t) / uint64(d)
		return start + uint16(step)
	}
	step := uint64(start-target) * uint64(t) / uint64(d)
	return start - uint16(step)
}

// Fraction returns t/d in Q14, saturating at One. d == 0 yields One.
func Fraction(t, d uint32) Q {
	if d == 0 || t >= d {
		return One
	}
	return Q(uint64(t) << FracBits / uint64(d))
}
