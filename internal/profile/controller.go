package profile

import (
	"github.com/phicore/phasectl/internal/mathutil"
)

// Controller is the profile transition controller.
//
// A change of the requested profile snapshots the current outputs, which
// may themselves be mid-ramp, and starts a counter-driven linear ramp to
// the new targets. The request tick publishes the snapshot unchanged;
// every later tick advances the counter, and when it reaches the duration
// the outputs snap to the targets and the controller is steady again.
type Controller struct {
	from, to ID

	start   Params
	target  Params
	current Params

	counter  uint32
	duration uint32
	ramping  bool
}

// NewController creates a controller steady at Normal.
func NewController() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Tick advances the controller. code is the 3-bit profile selector and
// duration the ramp length in ticks, sampled when the selector changes
// (0 means one tick).
func (c *Controller) Tick(code uint8, duration uint16) {
	if id := Select(code); id != c.to {
		c.request(id, duration)
		return
	}

	if !c.ramping {
		return
	}

	c.counter++
	if c.counter >= c.duration {
		c.current = c.target
		c.ramping = false
		return
	}
	c.current = Interpolate(&c.start, &c.target, c.counter, c.duration)
}

func (c *Controller) request(id ID, duration uint16) {
	c.from, c.to = c.to, id
	c.start = c.current
	c.target = Lookup(id)
	c.counter = 0
	c.duration = max(uint32(duration), minDuration)
	c.ramping = true
}

// Outputs returns the current interpolated parameters.
func (c *Controller) Outputs() Params {
	return c.current
}

// Progress returns counter/duration in Q14, One when steady.
func (c *Controller) Progress() mathutil.Q {
	if !c.ramping {
		return mathutil.One
	}
	return mathutil.Fraction(c.counter, c.duration)
}

// Ramping reports whether a transition is in progress.
func (c *Controller) Ramping() bool {
	return c.ramping
}

// From returns the profile the latest transition started from.
func (c *Controller) From() ID {
	return c.from
}

// To returns the requested profile.
func (c *Controller) To() ID {
	return c.to
}

// Counter returns the ramp counter.
func (c *Controller) Counter() uint32 {
	return c.counter
}

// Duration returns the ramp duration in ticks.
func (c *Controller) Duration() uint32 {
	return c.duration
}

// Reset returns the controller to steady Normal.
func (c *Controller) Reset() {
	normal := Lookup(Normal)
	*c = Controller{
		from:     Normal,
		to:       Normal,
		start:    normal,
		target:   normal,
		current:  normal,
		duration: minDuration,
	}
}

// GetLatency returns the controller latency in ticks.
func (c *Controller) GetLatency() int {
	return controllerLatency
}
