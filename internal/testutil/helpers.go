// Package testutil provides reusable test helper functions for the control-plane tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Q14 scale.
// NOTE: Duplicated from internal/mathutil so that mathutil's own tests can
// use these helpers without an import cycle.
const (
	QOne = 16384
)

// Fixed constrains the Q14-carrying integer types used across packages.
type Fixed interface {
	~int32 | ~int64 | ~int
}

// AssertUnit verifies that a Q14 value lies in [0, One].
func AssertUnit[T Fixed](t *testing.T, v T, msgAndArgs ...any) bool {
	t.Helper()
	if v < 0 || v > QOne {
		return assert.Fail(t, "value outside [0, One]",
			append([]any{"value %d is outside [0, %d]", int64(v), QOne}, msgAndArgs...)...)
	}
	return true
}

// AssertAllUnit verifies that every element of s lies in [0, One].
func AssertAllUnit[T Fixed](t *testing.T, s []T, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < 0 || v > QOne {
			return assert.Fail(t, "value outside [0, One]",
				"s[%d]=%d is outside [0, %d]", i, int64(v), QOne)
		}
	}
	return true
}

// AssertQInDelta verifies |expected-actual| <= delta in Q14 LSBs.
func AssertQInDelta[T Fixed](t *testing.T, expected, actual T, delta int64, msgAndArgs ...any) bool {
	t.Helper()
	diff := int64(expected) - int64(actual)
	if diff < 0 {
		diff = -diff
	}
	if diff > delta {
		return assert.Fail(t, "Q14 values differ",
			"expected %d, actual %d, diff %d > %d", int64(expected), int64(actual), diff, delta)
	}
	return true
}

// AssertNonIncreasing verifies s[i] <= s[i-1] for all i.
func AssertNonIncreasing[T Fixed](t *testing.T, s []T, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			return assert.Fail(t, "not non-increasing",
				"s[%d]=%d > s[%d]=%d", i, int64(s[i]), i-1, int64(s[i-1]))
		}
	}
	return true
}

// AssertStrictlyDecreasing verifies s[i] < s[i-1] for all i.
func AssertStrictlyDecreasing[T Fixed](t *testing.T, s []T, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] >= s[i-1] {
			return assert.Fail(t, "not strictly decreasing",
				"s[%d]=%d >= s[%d]=%d", i, int64(s[i]), i-1, int64(s[i-1]))
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic[T Fixed](t *testing.T, s []T, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%d < s[%d]=%d", i, int64(s[i]), i-1, int64(s[i-1]))
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
