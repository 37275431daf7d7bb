// Package landscape implements the φⁿ energy landscape.
//
// Each oscillator sits at an effective exponent n (its frequency is
// base×φⁿ). The restoring force combines a periodic landscape potential,
// repulsion from low-order harmonic ratios relative to a reference, and
// repulsion from low-order rational exponents. When an oscillator enters
// a harmonic danger zone the landscape also exports an escape correction
// for the oscillator's integrator to apply.
package landscape

import (
	"errors"
	"fmt"
	"math"

	"github.com/phicore/phasectl/internal/mathutil"
)

// ErrInvalidConfig indicates an invalid landscape configuration.
var ErrInvalidConfig = errors.New("invalid landscape configuration")

// Target is one harmonic catastrophe ratio.
type Target struct {
	Name   string
	Ratio  mathutil.Q
	Escape mathutil.Q // +1 or −1 (Q14 units of One)
}

// Rational is one rational-resonance table entry.
type Rational struct {
	Position mathutil.Q
	Weight   mathutil.Q
}

var (
	targets   = buildTargets()
	rationals = buildRationals()
)

func buildTargets() [numTargets]Target {
	ratios := [numTargets]struct {
		name string
		p, q int
	}{
		{"2:1", 2, 1},
		{"3:2", 3, 2},
		{"3:1", 3, 1},
		{"4:3", 4, 3},
		{"5:4", 5, 4},
	}

	var t [numTargets]Target
	for i, r := range ratios {
		f := float64(r.p) / float64(r.q)
		t[i] = Target{
			Name:   r.name,
			Ratio:  mathutil.Sat(int64(r.p) * int64(mathutil.One) / int64(r.q)),
			Escape: escapeDirection(f),
		}
	}
	return t
}

// escapeDirection points from log_φ(ratio) toward the nearer half-integer
// exponent, the stable attractors of the landscape.
func escapeDirection(ratio float64) mathutil.Q {
	n := math.Log(ratio) / math.Log(mathutil.PhiFloat)
	below := math.Floor(n-0.5) + 0.5
	above := below + 1
	if n-below < above-n {
		return -mathutil.One
	}
	return mathutil.One
}

func buildRationals() [numRationals]Rational {
	var r [numRationals]Rational
	i := 0
	for unit := rationalFirstUnit; unit < rationalLastUnit; unit++ {
		for _, d := range rationalDenominators {
			for p := 1; p < d.q; p++ {
				if 2*p == d.q {
					continue
				}
				r[i] = Rational{
					Position: mathutil.FromFloat(float64(unit) + float64(p)/float64(d.q)),
					Weight:   mathutil.FromFloat(d.weight),
				}
				i++
			}
		}
	}
	return r
}

// Targets returns the harmonic catastrophe table.
func Targets() [numTargets]Target {
	return targets
}

// Rationals returns the rational-resonance table.
func Rationals() [numRationals]Rational {
	return rationals
}

// Oscillator is the per-oscillator landscape input.
type Oscillator struct {
	// Exponent is the effective exponent n.
	Exponent mathutil.Q

	// Ratio is the oscillator frequency divided by the reference.
	Ratio mathutil.Q
}

// Force is the per-oscillator landscape output.
type Force struct {
	Landscape   mathutil.Q
	Catastrophe mathutil.Q
	Rational    mathutil.Q
	Total       mathutil.Q
	Energy      mathutil.Q // sin² of the landscape phase, monitoring only

	// Correction is the escape frequency correction (zero outside danger).
	Correction mathutil.Q

	Danger   bool
	Nearest  int        // index into Targets of the closest ratio
	Distance mathutil.Q // distance to the closest ratio
}

// Evaluate computes the force on a single oscillator.
func Evaluate(o Oscillator) Force {
	s := mathutil.SinTurns(o.Exponent)
	f := Force{
		Landscape: mathutil.Mul(landscapeAmplitude, s),
		Energy:    mathutil.Mul(s, s),
	}

	f.Nearest, f.Distance = nearestTarget(o.Ratio)
	if f.Distance < catastropheMargin {
		f.Danger = true
		depth := catastropheMargin - f.Distance
		f.Catastrophe = mathutil.Mul(catastropheGain, depth)
		f.Correction = escapeCorrection(targets[f.Nearest].Escape, depth)
	}

	f.Rational = rationalForce(o.Exponent)
	f.Total = mathutil.Add(mathutil.Add(f.Landscape, f.Catastrophe), f.Rational)

	return f
}

// escapeCorrection returns escape × escapeGain × depth, rescaled once.
// Any positive depth yields at least one unit in the escape direction.
func escapeCorrection(escape, depth mathutil.Q) mathutil.Q {
	p := int64(escape) * int64(escapeGain) * int64(depth)
	if p == 0 {
		return 0
	}

	mag := max(absWide(p)>>(2*mathutil.FracBits), 1)
	if p < 0 {
		return mathutil.Sat(-mag)
	}
	return mathutil.Sat(mag)
}

func absWide(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// nearestTarget returns the closest catastrophe ratio and its distance.
// Ties keep the earlier table entry.
func nearestTarget(ratio mathutil.Q) (int, mathutil.Q) {
	best, bestDist := 0, mathutil.MaxQ
	for i, t := range targets {
		d := mathutil.Abs(mathutil.Sub(ratio, t.Ratio))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// rationalForce sums the rational-resonance terms over the table.
func rationalForce(n mathutil.Q) mathutil.Q {
	var sum int64
	for _, r := range rationals {
		sum += int64(rationalTerm(r, n))
	}
	return mathutil.Sat(sum)
}

// rationalTerm returns −2wΔ/(Δ²+ε²)² for Δ = position − n, clamped to
// ±rationalTermLimit. Entries outside the window contribute nothing.
func rationalTerm(r Rational, n mathutil.Q) mathutil.Q {
	delta := mathutil.Sub(r.Position, n)
	if mathutil.Abs(delta) > rationalWindow {
		return 0
	}

	den := mathutil.Add(mathutil.Mul(delta, delta), epsilonSquared)
	if den < rationalFloor {
		return 0
	}

	num := mathutil.Mul(2*r.Weight, delta)
	term := -mathutil.Div(mathutil.Div(num, den, rationalFloor), den, rationalFloor)
	return mathutil.Clamp(term, -rationalTermLimit, rationalTermLimit)
}

// Config configures a landscape instance.
type Config struct {
	// Oscillators is the number of oscillators evaluated per tick.
	Oscillators int
}

// DefaultConfig returns the reference network configuration.
func DefaultConfig() Config {
	return Config{Oscillators: DefaultOscillators}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Oscillators < 1 || c.Oscillators > maxOscillators {
		return fmt.Errorf("%w: oscillators must be 1-%d, got %d",
			ErrInvalidConfig, maxOscillators, c.Oscillators)
	}
	return nil
}

// Landscape evaluates a fixed set of oscillators once per tick and
// registers the result.
type Landscape struct {
	cfg Config
	out []Force
}

// New creates a landscape.
func New(cfg Config) (*Landscape, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Landscape{
		cfg: cfg,
		out: make([]Force, cfg.Oscillators),
	}, nil
}

// Tick evaluates every oscillator. Missing inputs are treated as zero;
// extra inputs are ignored.
func (l *Landscape) Tick(in []Oscillator) {
	for i := range l.out {
		var o Oscillator
		if i < len(in) {
			o = in[i]
		}
		l.out[i] = Evaluate(o)
	}
}

// Forces returns the registered outputs. The slice is owned by the
// landscape and overwritten on every Tick.
func (l *Landscape) Forces() []Force {
	return l.out
}

// Force returns the registered output of oscillator i.
func (l *Landscape) Force(i int) Force {
	return l.out[i]
}

// Len returns the number of oscillators.
func (l *Landscape) Len() int {
	return len(l.out)
}

// AnyDanger reports whether any oscillator is in a catastrophe zone.
func (l *Landscape) AnyDanger() bool {
	for _, f := range l.out {
		if f.Danger {
			return true
		}
	}
	return false
}

// Reset clears the registered outputs.
func (l *Landscape) Reset() {
	clear(l.out)
}

// GetLatency returns the landscape latency in ticks.
func (l *Landscape) GetLatency() int {
	return outputLatency
}
