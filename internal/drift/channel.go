package drift

import (
	"errors"
	"fmt"

	"github.com/phicore/phasectl/internal/mathutil"
)

// ErrInvalidChannel indicates an invalid drift channel configuration.
var ErrInvalidChannel = errors.New("invalid drift channel")

// ChannelConfig describes one drift channel.
type ChannelConfig struct {
	// Center is the constant center frequency (OmegaDT).
	Center mathutil.Q

	// Bound is the reflecting limit on |offset|. Must be >= Step.
	Bound mathutil.Q

	// Step is the slow-tick step magnitude, 1 or 2 units.
	Step mathutil.Q

	// Period is the number of ticks between slow updates.
	Period int

	// WalkSeed seeds the random-walk PRNG.
	WalkSeed uint16

	// JitterSeed seeds the fast jitter PRNG.
	JitterSeed uint16

	// RandomInit maps the high walk-seed bits into an initial offset
	// inside the bound, so channels do not start aligned.
	RandomInit bool
}

// Validate checks if the channel configuration is valid.
func (c *ChannelConfig) Validate() error {
	if c.Center <= 0 {
		return fmt.Errorf("%w: center must be positive", ErrInvalidChannel)
	}
	if c.Step < minStep || c.Step > maxStep {
		return fmt.Errorf("%w: step must be %d-%d units", ErrInvalidChannel, minStep, maxStep)
	}
	if c.Bound < c.Step {
		return fmt.Errorf("%w: bound %d smaller than step %d", ErrInvalidChannel, c.Bound, c.Step)
	}
	if c.Period < 1 {
		return fmt.Errorf("%w: period must be at least 1 tick", ErrInvalidChannel)
	}
	return nil
}

// Channel is a single-channel drift generator.
// Output = center + offset + jitter, where offset is a bounded random walk
// updated every Period ticks and jitter is refreshed every tick.
type Channel struct {
	cfg ChannelConfig

	offset  mathutil.Q
	jitter  mathutil.Q
	counter int
	walk    LFSR
	noise   LFSR
}

// NewChannel creates a drift channel.
func NewChannel(cfg ChannelConfig) (*Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Channel{cfg: cfg}
	c.Reset()

	return c, nil
}

// Reset restores the seeded initial state.
func (c *Channel) Reset() {
	c.walk = NewLFSR(c.cfg.WalkSeed)
	c.noise = NewLFSR(c.cfg.JitterSeed)
	c.counter = 0
	c.jitter = 0
	c.offset = 0

	if c.cfg.RandomInit {
		span := int(2*c.cfg.Bound + 1)
		c.offset = mathutil.Q(int(c.walk.State()>>initSeedBits)%span) - c.cfg.Bound
	}
}

// Tick advances the channel by one update.
func (c *Channel) Tick() {
	c.counter++
	if c.counter >= c.cfg.Period {
		c.counter = 0
		c.offset = c.stepOffset()
	}

	c.jitter = c.nextJitter()
}

// stepOffset performs one reflected random-walk step.
func (c *Channel) stepOffset() mathutil.Q {
	v := c.walk.Next()

	step := c.cfg.Step
	if v&directionBit == 0 {
		step = -step
	}

	return reflect(c.offset+step, c.cfg.Bound)
}

// reflect folds v back inside [-bound, bound]. The walk never wraps.
func reflect(v, bound mathutil.Q) mathutil.Q {
	if v > bound {
		return 2*bound - v
	}
	if v < -bound {
		return -2*bound - v
	}
	return v
}

// nextJitter draws a triangular value in [-jitterSpan, jitterSpan].
func (c *Channel) nextJitter() mathutil.Q {
	v := c.noise.Next()
	a := mathutil.Q(v % jitterModulus)
	b := mathutil.Q((v >> jitterHighBits) % jitterModulus)
	return a - b
}

// Output returns center + offset + jitter.
func (c *Channel) Output() mathutil.Q {
	return c.cfg.Center + c.offset + c.jitter
}

// Center returns the constant center frequency.
func (c *Channel) Center() mathutil.Q {
	return c.cfg.Center
}

// Offset returns the current random-walk offset.
func (c *Channel) Offset() mathutil.Q {
	return c.offset
}

// Jitter returns the current jitter.
func (c *Channel) Jitter() mathutil.Q {
	return c.jitter
}

// Bound returns the reflecting bound.
func (c *Channel) Bound() mathutil.Q {
	return c.cfg.Bound
}

// GetLatency returns the channel latency in ticks.
func (c *Channel) GetLatency() int {
	return channelLatency
}
