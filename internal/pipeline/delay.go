package pipeline

// Delay is a fixed-latency register chain: the value returned by Push is
// the one pushed latency ticks earlier. Before the chain fills, it returns
// the reset value.
//
// Delay is not safe for concurrent use; the control plane runs in one
// synchronous domain.
type Delay[T any] struct {
	data       []T
	pos        int
	resetValue T
}

// NewDelay creates a delay line of the given latency.
// A non-positive latency yields a pass-through line.
func NewDelay[T any](latency int, resetValue T) *Delay[T] {
	if latency < 0 {
		latency = 0
	}

	d := &Delay[T]{
		data:       make([]T, latency),
		resetValue: resetValue,
	}
	d.Reset()

	return d
}

// Push inserts v and returns the value that has completed the chain.
func (d *Delay[T]) Push(v T) T {
	if len(d.data) == 0 {
		return v
	}

	out := d.data[d.pos]
	d.data[d.pos] = v
	d.pos = (d.pos + 1) % len(d.data)

	return out
}

// Reset refills the chain with the reset value.
func (d *Delay[T]) Reset() {
	for i := range d.data {
		d.data[i] = d.resetValue
	}
	d.pos = 0
}

// GetLatency returns the chain length in ticks.
func (d *Delay[T]) GetLatency() int {
	return len(d.data)
}
