package landscape

import (
	"testing"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	quarter   = mathutil.One / 4
	tenth     = mathutil.Q(1638)
	ratio2to1 = 2 * mathutil.One
	ratio3to2 = 3 * mathutil.Half
)

func TestTargets(t *testing.T) {
	tg := Targets()
	want := []mathutil.Q{32768, 24576, 49152, 21845, 20480}
	escapes := []mathutil.Q{mathutil.One, -mathutil.One, mathutil.One, -mathutil.One, mathutil.One}

	for i := range tg {
		assert.Equal(t, want[i], tg[i].Ratio, tg[i].Name)
		assert.Equal(t, escapes[i], tg[i].Escape, tg[i].Name)
	}
}

func TestRationals(t *testing.T) {
	r := Rationals()
	require.Len(t, r, numRationals)

	seen := make(map[mathutil.Q]bool)
	for _, e := range r {
		assert.GreaterOrEqual(t, e.Position, mathutil.Q(rationalFirstUnit)*mathutil.One)
		assert.Less(t, e.Position, mathutil.Q(rationalLastUnit)*mathutil.One)

		frac := mathutil.Frac(e.Position)
		assert.NotZero(t, frac, "integer position %d", e.Position)
		assert.NotEqual(t, mathutil.Half, frac, "half-integer position %d", e.Position)

		assert.Positive(t, e.Weight)
		assert.False(t, seen[e.Position], "duplicate position %d", e.Position)
		seen[e.Position] = true
	}
}

func TestLandscapeForce(t *testing.T) {
	assert.Zero(t, Evaluate(Oscillator{Exponent: 0}).Landscape)
	assert.Equal(t, landscapeAmplitude, Evaluate(Oscillator{Exponent: quarter}).Landscape)
	assert.Equal(t, -landscapeAmplitude, Evaluate(Oscillator{Exponent: 3 * quarter}).Landscape)

	// Just above an integer the force pushes up, just below a half-integer
	// it still pushes up, just above the half-integer it pushes down.
	assert.Positive(t, Evaluate(Oscillator{Exponent: tenth}).Landscape)
	assert.Positive(t, Evaluate(Oscillator{Exponent: mathutil.Half - tenth}).Landscape)
	assert.Negative(t, Evaluate(Oscillator{Exponent: mathutil.Half + tenth}).Landscape)

	// Period 1 in n.
	assert.Equal(t,
		Evaluate(Oscillator{Exponent: tenth}).Landscape,
		Evaluate(Oscillator{Exponent: 2*mathutil.One + tenth}).Landscape)
}

func TestEnergy(t *testing.T) {
	assert.Zero(t, Evaluate(Oscillator{Exponent: mathutil.One}).Energy)
	assert.Equal(t, mathutil.One, Evaluate(Oscillator{Exponent: quarter}).Energy)
	for n := mathutil.Q(0); n < mathutil.One; n += 97 {
		testutil.AssertUnit(t, Evaluate(Oscillator{Exponent: n}).Energy)
	}
}

func TestCatastrophe_Danger(t *testing.T) {
	f := Evaluate(Oscillator{Ratio: ratio2to1})
	assert.True(t, f.Danger)
	assert.Equal(t, 0, f.Nearest)
	assert.Zero(t, f.Distance)
	assert.Negative(t, f.Catastrophe)
	assert.Equal(t, mathutil.Q(-410), f.Catastrophe)
	assert.Equal(t, mathutil.Q(204), f.Correction)

	f = Evaluate(Oscillator{Ratio: ratio3to2})
	assert.True(t, f.Danger)
	assert.Equal(t, 1, f.Nearest)
	assert.Equal(t, mathutil.Q(-204), f.Correction, "3:2 escapes downward")
}

func TestCatastrophe_Margin(t *testing.T) {
	inside := Evaluate(Oscillator{Ratio: ratio2to1 + catastropheMargin - 1})
	assert.True(t, inside.Danger)
	assert.NotZero(t, inside.Correction)

	edge := Evaluate(Oscillator{Ratio: ratio2to1 + catastropheMargin})
	assert.False(t, edge.Danger)
	assert.Zero(t, edge.Catastrophe)
	assert.Zero(t, edge.Correction)

	// The corrections grow as the oscillator moves deeper.
	shallow := Evaluate(Oscillator{Ratio: ratio2to1 - 600})
	deep := Evaluate(Oscillator{Ratio: ratio2to1 - 100})
	assert.Greater(t, deep.Correction, shallow.Correction)
	assert.Less(t, deep.Catastrophe, shallow.Catastrophe)
}

// TestCatastrophe_EscapeAtAnyDepth verifies the smallest danger depths
// still produce a signed correction.
func TestCatastrophe_EscapeAtAnyDepth(t *testing.T) {
	for depth := mathutil.Q(1); depth <= 8; depth++ {
		up := Evaluate(Oscillator{Ratio: ratio2to1 + catastropheMargin - depth})
		require.True(t, up.Danger, "depth %d", depth)
		require.Positive(t, up.Correction, "2:1 depth %d", depth)

		down := Evaluate(Oscillator{Ratio: ratio3to2 + catastropheMargin - depth})
		require.True(t, down.Danger, "depth %d", depth)
		require.Negative(t, down.Correction, "3:2 depth %d", depth)
	}

	assert.Equal(t, mathutil.Q(1), escapeCorrection(mathutil.One, 1))
	assert.Equal(t, mathutil.Q(-1), escapeCorrection(-mathutil.One, 1))
	assert.Zero(t, escapeCorrection(mathutil.One, 0))
}

func TestCatastrophe_GoldenRatioIsSafe(t *testing.T) {
	f := Evaluate(Oscillator{Ratio: mathutil.Phi})
	assert.False(t, f.Danger)
	assert.Zero(t, f.Correction)
}

func TestRationalTerm(t *testing.T) {
	r := Rationals()[0]

	assert.Zero(t, rationalTerm(r, r.Position), "zero at the exact position")
	assert.Zero(t, rationalTerm(r, r.Position+rationalWindow+1), "outside the window")

	below := rationalTerm(r, r.Position-tenth)
	above := rationalTerm(r, r.Position+tenth)
	assert.Negative(t, below, "pushes down when below the position")
	assert.Positive(t, above, "pushes up when above the position")
	assert.LessOrEqual(t, mathutil.Abs(below), rationalTermLimit)
	assert.LessOrEqual(t, mathutil.Abs(above), rationalTermLimit)
}

func TestRationalForce_Window(t *testing.T) {
	// No table entry lies within the window of these exponents.
	assert.Zero(t, Evaluate(Oscillator{Exponent: mathutil.Half}).Rational)
	assert.Zero(t, Evaluate(Oscillator{Exponent: 4*mathutil.One + mathutil.Half}).Rational)

	for n := mathutil.Q(0); n < 5*mathutil.One; n += 113 {
		f := Evaluate(Oscillator{Exponent: n})
		require.LessOrEqual(t, mathutil.Abs(f.Rational), mathutil.Q(numRationals)*rationalTermLimit)
		require.Equal(t, mathutil.Add(mathutil.Add(f.Landscape, f.Catastrophe), f.Rational), f.Total)
	}
}

func TestConfig_Validate(t *testing.T) {
	for _, n := range []int{0, -1, maxOscillators + 1} {
		_, err := New(Config{Oscillators: n})
		require.ErrorIs(t, err, ErrInvalidConfig, "oscillators=%d", n)
	}

	l, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultOscillators, l.Len())
	assert.Equal(t, outputLatency, l.GetLatency())
}

func TestLandscape_Tick(t *testing.T) {
	l, err := New(Config{Oscillators: 3})
	require.NoError(t, err)

	l.Tick([]Oscillator{
		{Exponent: quarter, Ratio: mathutil.Phi},
		{Exponent: tenth, Ratio: ratio2to1},
	})

	assert.Equal(t, Evaluate(Oscillator{Exponent: quarter, Ratio: mathutil.Phi}), l.Force(0))
	assert.True(t, l.Force(1).Danger)
	assert.Equal(t, Evaluate(Oscillator{}), l.Force(2), "missing input treated as zero")
	assert.True(t, l.AnyDanger())
	assert.Len(t, l.Forces(), 3)
}

// TestLandscape_Reset verifies Reset() makes a used landscape match a fresh one.
func TestLandscape_Reset(t *testing.T) {
	used, err := New(DefaultConfig())
	require.NoError(t, err)
	used.Tick([]Oscillator{{Exponent: quarter, Ratio: ratio2to1}})
	used.Reset()

	fresh, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, fresh, used)
	assert.False(t, used.AnyDanger())
}

// BenchmarkLandscape_Tick benchmarks one full-network evaluation.
func BenchmarkLandscape_Tick(b *testing.B) {
	l, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	in := make([]Oscillator, DefaultOscillators)
	for i := range in {
		in[i] = Oscillator{Exponent: mathutil.Q(i) * quarter, Ratio: mathutil.Phi}
	}
	for b.Loop() {
		l.Tick(in)
	}
}
