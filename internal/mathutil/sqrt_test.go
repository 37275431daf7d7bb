package mathutil

import (
	"math"
	"testing"

	"github.com/phicore/phasectl/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// TestNewtonSqrt_DetectorRanges checks the two-iteration estimate in the
// ranges each geometric detector is tuned for.
func TestNewtonSqrt_DetectorRanges(t *testing.T) {
	tests := []struct {
		name  string
		p     int64
		shift uint
		bias  int64
		want  int64
	}{
		{"perfect square theta-alpha range", 192 * 192, 8, 64, 192},
		{"theta x alpha", 152 * 245, 8, 64, 193},
		{"beta-low x beta-high", 397 * 642, 10, 256, 505},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewtonSqrt(tt.p, tt.shift, tt.bias, 2)
			testutil.AssertQInDelta(t, tt.want, got, 1)
		})
	}
}

func TestNewtonSqrt_NonPositive(t *testing.T) {
	assert.Equal(t, int64(0), NewtonSqrt(0, 8, 64, 2))
	assert.Equal(t, int64(0), NewtonSqrt(-100, 8, 64, 2))
}

func TestNewtonSqrt_GuessNeverZero(t *testing.T) {
	// A negative bias would drive the guess to zero without the guard.
	assert.NotPanics(t, func() {
		_ = NewtonSqrt(10, 8, -100, 2)
	})
	assert.Positive(t, NewtonSqrt(10, 8, -100, 2))
}

func TestIsqrt_Exact(t *testing.T) {
	for n := int64(1); n < 5000; n += 7 {
		assert.Equal(t, n, Isqrt(n*n), "Isqrt(%d²)", n)
		assert.Equal(t, n-1, Isqrt(n*n-1), "Isqrt(%d²-1)", n)
	}
	assert.Equal(t, int64(0), Isqrt(0))
	assert.Equal(t, int64(0), Isqrt(-4))
	assert.Equal(t, int64(1), Isqrt(3))
	assert.Equal(t, int64(1)<<31, Isqrt(int64(1)<<62))
}

func TestIsqrt_MatchesFloat(t *testing.T) {
	for _, p := range []int64{2, 10, 12345, 987654321, 1 << 40, 1<<50 + 12345} {
		want := int64(math.Floor(math.Sqrt(float64(p))))
		assert.InDelta(t, want, Isqrt(p), 1, "Isqrt(%d)", p)
	}
}

func TestMagnitude(t *testing.T) {
	testutil.AssertQInDelta(t, One, Magnitude(FromFloat(0.6), FromFloat(0.8)), 1)
	assert.Equal(t, One, Magnitude(0, One))
	assert.Equal(t, One, Magnitude(-One, 0))
	assert.Equal(t, Q(0), Magnitude(0, 0))
}

func TestGeometricMean(t *testing.T) {
	assert.Equal(t, Q(192), GeometricMean(152, 245))
	assert.Equal(t, One, GeometricMean(One, One))
	assert.Equal(t, Q(0), GeometricMean(0, One))
	assert.Equal(t, Q(0), GeometricMean(-One, One))
}

// BenchmarkNewtonSqrt benchmarks the fixed two-iteration estimate.
func BenchmarkNewtonSqrt(b *testing.B) {
	for b.Loop() {
		_ = NewtonSqrt(37240, 8, 64, 2)
	}
}

// BenchmarkIsqrt benchmarks the exact integer square root.
func BenchmarkIsqrt(b *testing.B) {
	for b.Loop() {
		_ = Isqrt(268422349)
	}
}
