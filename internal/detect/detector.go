// Package detect implements the boundary alignment detectors.
//
// A detector compares a frequency boundary against an external reference
// and scores their proximity with a Gaussian approximation. The boundary
// is either the geometric mean of two drifted frequencies or a single
// frequency taken directly. Every detector is a fixed-latency register
// pipeline: each tick advances every stage from the previous stage's
// registered value, so the output always describes one input tick.
package detect

import (
	"errors"
	"fmt"

	"github.com/phicore/phasectl/internal/mathutil"
)

// ErrInvalidDetector indicates an invalid detector configuration.
var ErrInvalidDetector = errors.New("invalid detector")

// Kind selects how the boundary is formed.
type Kind int

const (
	// Geometric forms the boundary as √(a×b).
	Geometric Kind = iota

	// Direct uses a as the boundary.
	Direct
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Geometric:
		return "geometric"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Auxiliary selects the auxiliary score a detector publishes.
type Auxiliary int

const (
	// AuxAlignment publishes the alignment itself (stability or coupling).
	AuxAlignment Auxiliary = iota

	// AuxCrystallinity publishes alignment × crystallinity, where
	// crystallinity measures how close b/a is to φ.
	AuxCrystallinity
)

// Config describes one detector instance.
type Config struct {
	Name string
	Kind Kind

	// Sigma is the Gaussian width in OmegaDT units.
	Sigma mathutil.Q

	// Cutoff forces alignment to 0 at or above this detuning.
	// Zero means Sigma.
	Cutoff mathutil.Q

	// Shift and Bias form the Newton initial guess (p >> Shift) + Bias.
	// Geometric detectors only.
	Shift uint
	Bias  int64

	Auxiliary Auxiliary
}

// Validate checks if the detector configuration is valid.
func (c *Config) Validate() error {
	if c.Kind != Geometric && c.Kind != Direct {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidDetector, c.Kind)
	}
	if c.Sigma < 1 {
		return fmt.Errorf("%w: sigma must be positive", ErrInvalidDetector)
	}
	if c.Cutoff < 0 {
		return fmt.Errorf("%w: cutoff must not be negative", ErrInvalidDetector)
	}
	if c.Kind == Geometric {
		if c.Shift > maxShift {
			return fmt.Errorf("%w: shift %d exceeds %d", ErrInvalidDetector, c.Shift, maxShift)
		}
		if c.Bias < 0 {
			return fmt.Errorf("%w: bias must not be negative", ErrInvalidDetector)
		}
	}
	if c.Auxiliary != AuxAlignment && c.Auxiliary != AuxCrystallinity {
		return fmt.Errorf("%w: unknown auxiliary %d", ErrInvalidDetector, c.Auxiliary)
	}
	return nil
}

// Sample is one registered detector output.
type Sample struct {
	Boundary  mathutil.Q
	Detuning  mathutil.Q // always non-negative
	Alignment mathutil.Q // in [0, One], non-increasing in Detuning
	Auxiliary mathutil.Q // in [0, One]
}

// state is one pipeline register. Each stage fills in the fields it owns
// and carries the inputs later stages still need. valid is false until an
// input tick has reached the register; invalid registers hold the zero
// Sample.
type state struct {
	a, b, ref mathutil.Q
	product   int64
	valid     bool
	Sample
}

type stageFunc func(d *Detector, s state) state

// Detector is a fixed-latency boundary alignment pipeline.
type Detector struct {
	cfg    Config
	scale  int64 // One/σ² in Q14, kept wide
	cutoff mathutil.Q
	stages []stageFunc
	regs   []state
}

// New creates a detector.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Detector{
		cfg:    cfg,
		scale:  (int64(mathutil.One) << mathutil.FracBits) / (int64(cfg.Sigma) * int64(cfg.Sigma)),
		cutoff: cfg.Cutoff,
	}
	if d.cutoff == 0 {
		d.cutoff = cfg.Sigma
	}

	switch cfg.Kind {
	case Geometric:
		d.stages = []stageFunc{stageProduct, stageSqrt, stageDetune, stageGaussian, stageAuxiliary}
	case Direct:
		d.stages = []stageFunc{stageDirect, stageGaussian, stageAuxiliary}
	}
	d.regs = make([]state, len(d.stages))

	return d, nil
}

// NewPhi0 creates the φ⁰ boundary detector (theta × alpha against F1).
func NewPhi0() *Detector {
	return mustNew(Config{
		Name:      "phi0",
		Kind:      Geometric,
		Sigma:     phi0Sigma,
		Shift:     phi0Shift,
		Bias:      phi0Bias,
		Auxiliary: AuxCrystallinity,
	})
}

// NewSecondBoundary creates the second boundary detector
// (beta-low × beta-high against F3). Its auxiliary is the stability score.
func NewSecondBoundary() *Detector {
	return mustNew(Config{
		Name:      "second",
		Kind:      Geometric,
		Sigma:     secondSigma,
		Shift:     secondShift,
		Bias:      secondBias,
		Auxiliary: AuxAlignment,
	})
}

// NewDirect creates the direct coupling detector (beta-high against F4).
func NewDirect() *Detector {
	return mustNew(Config{
		Name:      "direct",
		Kind:      Direct,
		Sigma:     directSigma,
		Auxiliary: AuxAlignment,
	})
}

// mustNew is used only with the compiled-in presets above.
func mustNew(cfg Config) *Detector {
	d, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return d
}

// Tick advances the pipeline by one tick. a and b are the actual
// frequencies (b is ignored by direct detectors), ref is the external
// reference frequency.
func (d *Detector) Tick(a, b, ref mathutil.Q) {
	// Later stages first, so every stage reads its predecessor's
	// previous-tick register.
	for i := len(d.regs) - 1; i > 0; i-- {
		prev := d.regs[i-1]
		if !prev.valid {
			d.regs[i] = state{}
			continue
		}
		d.regs[i] = d.stages[i](d, prev)
	}
	d.regs[0] = d.stages[0](d, state{a: a, b: b, ref: ref, valid: true})
}

// Output returns the registered output sample.
func (d *Detector) Output() Sample {
	return d.regs[len(d.regs)-1].Sample
}

// Proximity returns the Gaussian proximity score for a detuning:
// One − d²/σ² clamped to [0, One], and exactly 0 at or above the cutoff.
func (d *Detector) Proximity(detuning mathutil.Q) mathutil.Q {
	detuning = mathutil.Abs(detuning)
	if detuning >= d.cutoff {
		return 0
	}
	sq := int64(detuning) * int64(detuning)
	return mathutil.ClampUnitWide(int64(mathutil.One) - (sq*d.scale)>>mathutil.FracBits)
}

// Name returns the configured detector name.
func (d *Detector) Name() string {
	return d.cfg.Name
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Reset clears every pipeline register. Until the first input reaches the
// output the detector reports the zero Sample.
func (d *Detector) Reset() {
	clear(d.regs)
}

// GetLatency returns the pipeline depth in ticks.
func (d *Detector) GetLatency() int {
	return len(d.stages)
}

// Latency returns the pipeline depth of a detector kind.
func Latency(k Kind) int {
	if k == Direct {
		return directStages
	}
	return geometricStages
}

func stageProduct(_ *Detector, s state) state {
	s.product = int64(mathutil.Abs(s.a)) * int64(mathutil.Abs(s.b))
	return s
}

func stageSqrt(d *Detector, s state) state {
	s.Boundary = mathutil.Sat(mathutil.NewtonSqrt(s.product, d.cfg.Shift, d.cfg.Bias, sqrtIterations))
	return s
}

func stageDetune(_ *Detector, s state) state {
	s.Detuning = mathutil.Abs(mathutil.Sub(s.Boundary, s.ref))
	return s
}

func stageDirect(d *Detector, s state) state {
	s.Boundary = s.a
	return stageDetune(d, s)
}

func stageGaussian(d *Detector, s state) state {
	s.Alignment = d.Proximity(s.Detuning)
	return s
}

func stageAuxiliary(d *Detector, s state) state {
	switch d.cfg.Auxiliary {
	case AuxCrystallinity:
		s.Auxiliary = mathutil.Mul(s.Alignment, Crystallinity(s.a, s.b))
	default:
		s.Auxiliary = s.Alignment
	}
	return s
}

// Crystallinity returns 1 − |high − low×φ| / (low×φ) clamped to [0, One].
func Crystallinity(low, high mathutil.Q) mathutil.Q {
	target := mathutil.Mul(low, mathutil.Phi)
	if target <= 0 {
		return 0
	}
	dev := mathutil.Abs(mathutil.Sub(high, target))
	return mathutil.ClampUnit(mathutil.Sub(mathutil.One, mathutil.Div(dev, target, crystallinityFloor)))
}
