package detect

import (
	"testing"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Band and reference frequencies at 4000 ticks/s (OmegaDT units).
const (
	omegaTheta    = 152
	omegaAlpha    = 245
	omegaBetaLow  = 397
	omegaBetaHigh = 642
	omegaF1       = 196
	omegaF3       = 515
	omegaF4       = 643
)

func presets() []*Detector {
	return []*Detector{NewPhi0(), NewSecondBoundary(), NewDirect()}
}

func TestProximity_Shape(t *testing.T) {
	for _, d := range presets() {
		t.Run(d.Name(), func(t *testing.T) {
			assert.Equal(t, mathutil.One, d.Proximity(0), "unit at zero detuning")

			cutoff := d.Config().Sigma
			curve := make([]mathutil.Q, 0, cutoff)
			for det := mathutil.Q(0); det < cutoff; det++ {
				curve = append(curve, d.Proximity(det))
			}
			testutil.AssertStrictlyDecreasing(t, curve)

			for det := cutoff; det < cutoff+100; det++ {
				require.Zero(t, d.Proximity(det), "nonzero at/above cutoff %d", det)
			}

			assert.Equal(t, d.Proximity(5), d.Proximity(-5), "symmetric in detuning")
		})
	}
}

func TestProximity_ExplicitCutoff(t *testing.T) {
	d, err := New(Config{Name: "narrow", Kind: Direct, Sigma: 20, Cutoff: 10})
	require.NoError(t, err)

	assert.Positive(t, d.Proximity(9))
	assert.Zero(t, d.Proximity(10))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero sigma", Config{Kind: Direct}},
		{"negative cutoff", Config{Kind: Direct, Sigma: 4, Cutoff: -1}},
		{"unknown kind", Config{Kind: Kind(9), Sigma: 4}},
		{"large shift", Config{Kind: Geometric, Sigma: 4, Shift: maxShift + 1}},
		{"negative bias", Config{Kind: Geometric, Sigma: 4, Bias: -1}},
		{"unknown auxiliary", Config{Kind: Direct, Sigma: 4, Auxiliary: Auxiliary(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidDetector)
		})
	}
}

func TestLatency(t *testing.T) {
	assert.Equal(t, geometricStages, NewPhi0().GetLatency())
	assert.Equal(t, geometricStages, NewSecondBoundary().GetLatency())
	assert.Equal(t, directStages, NewDirect().GetLatency())
	assert.Equal(t, directStages, Latency(Direct))
	assert.Equal(t, geometricStages, Latency(Geometric))
}

// TestPipeline_DefaultUntilLatency verifies outputs hold the reset default
// for Latency-1 ticks and reflect the first input at Latency.
func TestPipeline_DefaultUntilLatency(t *testing.T) {
	for _, d := range presets() {
		t.Run(d.Name(), func(t *testing.T) {
			for i := 1; i < d.GetLatency(); i++ {
				d.Tick(omegaBetaHigh, omegaBetaHigh, omegaBetaHigh)
				require.Equal(t, Sample{}, d.Output(), "tick %d", i)
			}
			d.Tick(omegaBetaHigh, omegaBetaHigh, omegaBetaHigh)
			assert.NotEqual(t, Sample{}, d.Output())
		})
	}
}

// TestPipeline_OneInputTick verifies every output field describes the
// same input tick even while inputs change every tick.
func TestPipeline_OneInputTick(t *testing.T) {
	d := NewDirect()
	lat := d.GetLatency()

	inputs := make([]mathutil.Q, 50)
	for i := range inputs {
		inputs[i] = omegaF4 + mathutil.Q(i%15) - 7
	}

	for i, in := range inputs {
		d.Tick(in, 0, omegaF4)
		if i+1 < lat {
			continue
		}
		src := inputs[i+1-lat]
		out := d.Output()
		require.Equal(t, src, out.Boundary, "tick %d", i)
		require.Equal(t, mathutil.Abs(src-omegaF4), out.Detuning, "tick %d", i)
		require.Equal(t, d.Proximity(out.Detuning), out.Alignment, "tick %d", i)
	}
}

func TestPhi0_NominalBands(t *testing.T) {
	d := NewPhi0()
	for range d.GetLatency() {
		d.Tick(omegaTheta, omegaAlpha, omegaF1)
	}
	out := d.Output()

	// √(152×245) ≈ 192.97; two Newton steps from the biased guess give 192.
	assert.Equal(t, mathutil.Q(192), out.Boundary)
	assert.Equal(t, mathutil.Q(4), out.Detuning)
	assert.Equal(t, mathutil.Q(15360), out.Alignment)
	// alpha/theta is φ to within one unit, so crystallinity is One.
	assert.Equal(t, out.Alignment, out.Auxiliary)
}

func TestSecondBoundary_NominalBands(t *testing.T) {
	d := NewSecondBoundary()
	for range d.GetLatency() {
		d.Tick(omegaBetaLow, omegaBetaHigh, omegaF3)
	}
	out := d.Output()

	assert.Equal(t, mathutil.Q(504), out.Boundary)
	assert.Equal(t, mathutil.Q(11), out.Detuning)
	assert.Equal(t, d.Proximity(11), out.Alignment)
	assert.Equal(t, out.Alignment, out.Auxiliary, "stability equals alignment")
	testutil.AssertUnit(t, out.Alignment, "alignment")
}

func TestDirect_NominalBands(t *testing.T) {
	d := NewDirect()
	for range d.GetLatency() {
		d.Tick(omegaBetaHigh, 0, omegaF4)
	}
	out := d.Output()

	assert.Equal(t, mathutil.Q(omegaBetaHigh), out.Boundary)
	assert.Equal(t, mathutil.Q(1), out.Detuning)
	assert.Equal(t, mathutil.Q(16271), out.Alignment)
	assert.Equal(t, out.Alignment, out.Auxiliary)
}

func TestCrystallinity(t *testing.T) {
	assert.Equal(t, mathutil.One, Crystallinity(omegaTheta, omegaAlpha))
	assert.Zero(t, Crystallinity(0, omegaAlpha), "zero low")
	assert.Zero(t, Crystallinity(100, 1000), "far from φ clamps to zero")

	// high = 2×low is about 23.6% away from φ.
	c := Crystallinity(1000, 2000)
	assert.InDelta(t, 0.764, c.Float(), 0.01)
}

func TestOutputsBounded(t *testing.T) {
	for _, d := range presets() {
		for a := mathutil.Q(0); a < 1200; a += 7 {
			d.Tick(a, a+a/2, omegaF3)
			out := d.Output()
			testutil.AssertUnit(t, out.Alignment, "alignment")
			testutil.AssertUnit(t, out.Auxiliary, "auxiliary")
			require.GreaterOrEqual(t, out.Detuning, mathutil.Q(0))
		}
	}
}

// TestDetector_Reset verifies Reset() makes a used detector match a fresh one.
func TestDetector_Reset(t *testing.T) {
	used := NewPhi0()
	for i := range 20 {
		used.Tick(omegaTheta+mathutil.Q(i), omegaAlpha, omegaF1)
	}
	used.Reset()

	fresh := NewPhi0()
	assert.Equal(t, fresh.regs, used.regs)
	assert.Equal(t, fresh.Output(), used.Output())
}

// TestPipeline_NoAlignmentBeforeFirstSample verifies that a reset
// detector fed a far-detuned boundary never reports alignment while its
// pipeline refills.
func TestPipeline_NoAlignmentBeforeFirstSample(t *testing.T) {
	const farBand = 3000
	for _, d := range presets() {
		t.Run(d.Name(), func(t *testing.T) {
			for range 20 {
				d.Tick(omegaBetaHigh, omegaBetaHigh, omegaBetaHigh)
			}
			d.Reset()

			for i := 1; i <= 2*d.GetLatency(); i++ {
				d.Tick(farBand, farBand, omegaF1)
				out := d.Output()
				require.Zero(t, out.Alignment, "tick %d", i)
				require.Zero(t, out.Auxiliary, "tick %d", i)
				if i < d.GetLatency() {
					require.Equal(t, Sample{}, out, "tick %d", i)
				}
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "geometric", Geometric.String())
	assert.Equal(t, "direct", Direct.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

// BenchmarkDetector_Tick benchmarks one geometric detector update.
func BenchmarkDetector_Tick(b *testing.B) {
	d := NewPhi0()
	for b.Loop() {
		d.Tick(omegaTheta, omegaAlpha, omegaF1)
	}
}
