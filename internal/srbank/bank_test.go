package srbank

import (
	"testing"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	unitX    = Vector{X: mathutil.One}
	unitY    = Vector{Y: mathutil.One}
	negX     = Vector{X: -mathutil.One}
	diagonal = Vector{X: 11585, Y: 11585} // 45°
	halfX    = Vector{X: mathutil.Half}
)

// coherentInputs returns inputs with every harmonic fully coherent.
func coherentInputs(amplitude mathutil.Q) *Inputs {
	in := &Inputs{BetaAmplitude: amplitude}
	for h := range N {
		in.Reference[h] = unitX
		in.Matched[h] = halfX
		in.Omega[h] = mathutil.Q(100 * (h + 1))
	}
	return in
}

// settle feeds the same inputs for the full pipeline depth.
func settle(b *Bank, in *Inputs) Outputs {
	for range b.GetLatency() {
		b.Tick(in)
	}
	return b.Outputs()
}

func TestCoherence(t *testing.T) {
	assert.Equal(t, mathutil.One, Coherence(unitX, unitX))
	assert.Equal(t, mathutil.One, Coherence(unitX, halfX), "magnitude independent")
	assert.Equal(t, mathutil.One, Coherence(unitX, negX), "phase-agnostic")
	assert.Zero(t, Coherence(unitX, unitY))
	assert.InDelta(t, 0.7071, Coherence(unitX, diagonal).Float(), 0.001)
	assert.Zero(t, Coherence(unitX, Vector{}), "zero vector")
}

func TestSigmoid(t *testing.T) {
	assert.Zero(t, Sigmoid(0))
	assert.Zero(t, Sigmoid(mathutil.Half))
	assert.Equal(t, mathutil.Half, Sigmoid(3*mathutil.One/4))
	assert.Equal(t, mathutil.One, Sigmoid(mathutil.One))

	prev := Sigmoid(mathutil.Half)
	for c := mathutil.Half; c <= mathutil.One; c += 64 {
		cur := Sigmoid(c)
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestQuietFactor(t *testing.T) {
	assert.Equal(t, mathutil.One, QuietFactor(0))
	assert.Equal(t, mathutil.One, QuietFactor(QuietFloor))
	assert.Equal(t, mathutil.Half, QuietFactor(3*mathutil.One/8))
	assert.Zero(t, QuietFactor(QuietThreshold))
	assert.Zero(t, QuietFactor(mathutil.One))
}

func TestAdaptiveEnhancement(t *testing.T) {
	assert.Equal(t, mathutil.One, AdaptiveEnhancement(mathutil.One))
	assert.Equal(t, mathutil.Q(24576), AdaptiveEnhancement(0))
	assert.Equal(t, mathutil.Q(20480), AdaptiveEnhancement(mathutil.Half))
	assert.Equal(t, mathutil.Q(24576), AdaptiveEnhancement(-mathutil.One), "stability clamped")
}

func TestBank_Latency(t *testing.T) {
	b := New(Config{})
	in := coherentInputs(0)

	b.Tick(in)
	assert.Equal(t, Outputs{}, b.Outputs(), "default after one tick")

	b.Tick(in)
	out := b.Outputs()
	assert.Equal(t, mathutil.One, out.Coherence[0])
	assert.Equal(t, in.Omega, out.Omega)
}

func TestBank_CoherentAndQuiet(t *testing.T) {
	b := New(Config{})
	out := settle(b, coherentInputs(0))

	assert.True(t, out.BetaQuiet)
	assert.Equal(t, mathutil.One, out.QuietFactor)
	assert.Equal(t, uint8(0x1F), out.Mask)
	assert.True(t, out.AnyActive)
	assert.Equal(t, mathutil.One, out.Coupling)

	for h := range N {
		assert.Equal(t, mathutil.One, out.Gain[h])
		assert.Equal(t, b.qWeight[h], out.WeightedGain[h])
		assert.Equal(t, b.ampDecay[h], out.DecayedGain[h])
		assert.Equal(t, b.fixed[h], out.Enhancement[h])
	}

	// F3 has the largest Q factor and F1 the largest amplitude.
	assert.Equal(t, mathutil.One, out.WeightedGain[2])
	assert.Equal(t, mathutil.One, out.DecayedGain[0])
	assert.Equal(t, mathutil.Q(24576), out.Enhancement[0])
}

func TestBank_LoudBetaBlocksCoupling(t *testing.T) {
	b := New(Config{})
	out := settle(b, coherentInputs(QuietThreshold))

	assert.False(t, out.BetaQuiet)
	assert.Zero(t, out.QuietFactor)
	assert.Zero(t, out.Mask)
	assert.False(t, out.AnyActive)
	assert.Zero(t, out.Coupling)
}

func TestBank_PartialQuiet(t *testing.T) {
	b := New(Config{})
	out := settle(b, coherentInputs(3*mathutil.One/8))

	assert.True(t, out.BetaQuiet)
	assert.Equal(t, mathutil.Half, out.QuietFactor)
	assert.Equal(t, uint8(0x1F), out.Mask, "active only needs coherence and quiet")
	assert.Equal(t, mathutil.Half, out.Coupling)
}

func TestBank_MaskBits(t *testing.T) {
	b := New(Config{})
	in := coherentInputs(0)
	in.Matched[1] = unitY
	in.Matched[3] = diagonal // 0.707 < 0.75

	out := settle(b, in)
	assert.Equal(t, uint8(0b10101), out.Mask)
	assert.Zero(t, out.Gain[1])
	assert.Positive(t, out.Gain[3])
	testutil.AssertAllUnit(t, out.Gain[:])
	testutil.AssertAllUnit(t, out.Coherence[:])
}

func TestBank_Adaptive(t *testing.T) {
	b := New(Config{Adaptive: true})
	in := coherentInputs(0)
	for h := range N {
		in.Stability[h] = mathutil.Q(h) * mathutil.One / 4
	}

	out := settle(b, in)
	for h := range N {
		assert.Equal(t, AdaptiveEnhancement(in.Stability[h]), out.Enhancement[h])
	}
	assert.True(t, b.Config().Adaptive)
}

// TestBank_Reset verifies Reset() makes a used bank match a fresh one.
func TestBank_Reset(t *testing.T) {
	used := New(Config{})
	settle(used, coherentInputs(0))
	used.Reset()

	assert.Equal(t, New(Config{}), used)
}

// BenchmarkBank_Tick benchmarks one bank update.
func BenchmarkBank_Tick(b *testing.B) {
	bank := New(Config{Adaptive: true})
	in := coherentInputs(0)
	for b.Loop() {
		bank.Tick(in)
	}
}
