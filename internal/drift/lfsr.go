// Package drift implements the frequency drift generators: bounded random
// walks with reflecting boundaries plus fast triangular jitter around a
// constant center frequency.
package drift

// LFSR is a 16-bit Galois linear-feedback shift register.
// It never enters the all-zero state.
type LFSR struct {
	state uint16
}

// NewLFSR creates a register seeded with seed (zero is replaced).
func NewLFSR(seed uint16) LFSR {
	return LFSR{state: sanitizeSeed(seed)}
}

// Next advances the register by one step and returns the new state.
func (l *LFSR) Next() uint16 {
	if l.state == 0 {
		l.state = lfsrFallbackSeed
	}
	lsb := l.state & 1
	l.state >>= 1
	if lsb != 0 {
		l.state ^= lfsrTaps
	}
	return l.state
}

// State returns the current register contents.
func (l *LFSR) State() uint16 {
	return l.state
}

func sanitizeSeed(seed uint16) uint16 {
	if seed == 0 {
		return lfsrFallbackSeed
	}
	return seed
}
