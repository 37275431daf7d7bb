// Package srbank implements the reference harmonic bank.
//
// The bank scores, per Schumann harmonic, how coherent an externally
// driven reference oscillator is with its matched internal oscillator,
// and turns that score into a coupling gain gated by how quiet the
// masking beta band is. The oscillators themselves live outside; the
// bank only owns the coherence, gain and enhancement arithmetic.
//
// The bank is a two-stage pipeline: stage 1 registers dot products and
// magnitudes, stage 2 registers every derived output.
package srbank

import (
	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
)

// N is the number of harmonics.
const N = params.NumHarmonics

// Vector is an oscillator phase vector (x, y) in Q14.
type Vector struct {
	X, Y mathutil.Q
}

// Inputs are the per-tick bank inputs.
type Inputs struct {
	// Reference are the externally driven reference oscillators F1..F5.
	Reference [N]Vector

	// Matched are the internal oscillators matched to each harmonic.
	Matched [N]Vector

	// BetaAmplitude is the masking beta-band amplitude.
	BetaAmplitude mathutil.Q

	// Stability drives the adaptive enhancement, per harmonic.
	Stability [N]mathutil.Q

	// Omega are the drifted reference frequencies, passed through.
	Omega [N]mathutil.Q
}

// Outputs are the registered bank outputs.
type Outputs struct {
	Coherence    [N]mathutil.Q
	Gain         [N]mathutil.Q // sigmoid(coherence) × quiet factor
	WeightedGain [N]mathutil.Q // Gain × Q/Qmax
	DecayedGain  [N]mathutil.Q // Gain × A/Amax
	Enhancement  [N]mathutil.Q
	Omega        [N]mathutil.Q

	QuietFactor mathutil.Q
	BetaQuiet   bool

	// Mask has bit h set when harmonic h is active.
	Mask      uint8
	AnyActive bool

	// Coupling is the mean per-harmonic gain.
	Coupling mathutil.Q
}

// Config configures the bank.
type Config struct {
	// Adaptive computes enhancement from stability instead of the fixed table.
	Adaptive bool
}

// stage1 holds the registered products of the first pipeline stage.
// valid is false until the first input has been captured, so the
// outputs stay at their reset default instead of reading zero inputs
// as a quiet beta band.
type stage1 struct {
	valid     bool
	dot       [N]int64 // Q28
	magnitude [N]int64 // |a|×|b|, Q28
	amplitude mathutil.Q
	stability [N]mathutil.Q
	omega     [N]mathutil.Q
}

// Bank is the reference harmonic bank.
type Bank struct {
	cfg Config

	qWeight  [N]mathutil.Q
	ampDecay [N]mathutil.Q
	fixed    [N]mathutil.Q

	s1  stage1
	out Outputs
}

// New creates a bank.
func New(cfg Config) *Bank {
	b := &Bank{cfg: cfg}

	qMax, aMax := params.MaxQFactor(), params.MaxAmplitude()
	for h, sr := range params.Schumann {
		b.qWeight[h] = mathutil.FromFloat(sr.QFactor / qMax)
		b.ampDecay[h] = mathutil.FromFloat(sr.Amplitude / aMax)
		b.fixed[h] = mathutil.FromFloat(fixedEnhancement[h])
	}

	return b
}

// Tick advances the bank by one tick.
func (b *Bank) Tick(in *Inputs) {
	b.out = b.derive(&b.s1)
	b.s1 = capture(in)
}

func capture(in *Inputs) stage1 {
	s := stage1{
		valid:     true,
		amplitude: in.BetaAmplitude,
		stability: in.Stability,
		omega:     in.Omega,
	}
	for h := range N {
		s.dot[h] = Dot(in.Reference[h], in.Matched[h])
		s.magnitude[h] = int64(Magnitude(in.Reference[h])) * int64(Magnitude(in.Matched[h]))
	}
	return s
}

func (b *Bank) derive(s *stage1) Outputs {
	if !s.valid {
		return Outputs{}
	}

	out := Outputs{
		Omega:       s.omega,
		QuietFactor: QuietFactor(s.amplitude),
		BetaQuiet:   s.amplitude < QuietThreshold,
	}

	var sum int64
	for h := range N {
		c := coherence(s.dot[h], s.magnitude[h])
		g := mathutil.Mul(Sigmoid(c), out.QuietFactor)

		out.Coherence[h] = c
		out.Gain[h] = g
		out.WeightedGain[h] = mathutil.Mul(g, b.qWeight[h])
		out.DecayedGain[h] = mathutil.Mul(g, b.ampDecay[h])
		out.Enhancement[h] = b.enhancement(h, s.stability[h])
		sum += int64(g)

		if c >= activeCoherence && out.BetaQuiet {
			out.Mask |= 1 << h
		}
	}

	out.AnyActive = out.Mask != 0
	out.Coupling = mathutil.ClampUnitWide(sum / N)

	return out
}

func (b *Bank) enhancement(h int, stability mathutil.Q) mathutil.Q {
	if !b.cfg.Adaptive {
		return b.fixed[h]
	}
	return AdaptiveEnhancement(stability)
}

// Outputs returns the registered outputs.
func (b *Bank) Outputs() Outputs {
	return b.out
}

// Config returns the bank configuration.
func (b *Bank) Config() Config {
	return b.cfg
}

// Reset clears both pipeline stages.
func (b *Bank) Reset() {
	b.s1 = stage1{}
	b.out = Outputs{}
}

// GetLatency returns the pipeline depth in ticks.
func (b *Bank) GetLatency() int {
	return bankLatency
}

// Dot returns a·b in Q28.
func Dot(a, b Vector) int64 {
	return int64(a.X)*int64(b.X) + int64(a.Y)*int64(b.Y)
}

// Magnitude returns |v| in Q14.
func Magnitude(v Vector) mathutil.Q {
	return mathutil.Magnitude(v.X, v.Y)
}

// Coherence returns |a·b| / (|a||b|) in [0, One].
func Coherence(a, b Vector) mathutil.Q {
	return coherence(Dot(a, b), int64(Magnitude(a))*int64(Magnitude(b)))
}

func coherence(dot, magnitude int64) mathutil.Q {
	if dot < 0 {
		dot = -dot
	}
	return mathutil.ClampUnitWide((dot << mathutil.FracBits) / max(magnitude, magnitudeFloor))
}

// Sigmoid maps coherence 0.5..1.0 linearly onto 0..1; below 0.5 is 0.
func Sigmoid(c mathutil.Q) mathutil.Q {
	if c <= sigmoidLow {
		return 0
	}
	return mathutil.ClampUnitWide(sigmoidSlope * int64(c-sigmoidLow))
}

// QuietFactor returns One at or below QuietFloor, 0 at or above
// QuietThreshold, and a linear blend between.
func QuietFactor(amplitude mathutil.Q) mathutil.Q {
	switch {
	case amplitude <= QuietFloor:
		return mathutil.One
	case amplitude >= QuietThreshold:
		return 0
	default:
		return mathutil.ClampUnit(mathutil.Div(QuietThreshold-amplitude, QuietThreshold-QuietFloor, 1))
	}
}

// AdaptiveEnhancement returns 1 + 0.5×(1 − stability).
func AdaptiveEnhancement(stability mathutil.Q) mathutil.Q {
	return enhancementBase + mathutil.Mul(enhancementGain, mathutil.One-mathutil.ClampUnit(stability))
}
