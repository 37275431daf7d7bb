// Package simdops routes the vector kernels used by trace analysis to the
// SIMD implementations in github.com/tphakala/simd.
//
// Traces are recorded as float64, so only the f64 kernels are bound.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops holds the SIMD kernels. Function pointers keep callers independent
// of the kernel package and let tests substitute scalar references.
type Ops struct {
	// DotProduct returns Σ a[i]×b[i] over the shorter of the two slices.
	DotProduct func(a, b []float64) float64

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] × s.
	Scale func(dst, a []float64, s float64)
}

var ops64 = Ops{
	DotProduct: f64.DotProduct,
	Sum:        f64.Sum,
	Scale:      f64.Scale,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}

// Mean returns the arithmetic mean of a, or 0 for an empty slice.
func (o *Ops) Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return o.Sum(a) / float64(len(a))
}

// MeanSquare returns the mean of a[i]², or 0 for an empty slice.
func (o *Ops) MeanSquare(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return o.DotProduct(a, a) / float64(len(a))
}
