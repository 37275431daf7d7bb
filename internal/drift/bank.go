package drift

import (
	"fmt"

	"github.com/phicore/phasectl/internal/mathutil"
	"github.com/phicore/phasectl/internal/params"
)

// Bank is a homogeneous array of drift channels advanced together.
// The multi-harmonic generator and the internal band generators are both
// banks; only their configuration tables differ.
type Bank struct {
	channels []*Channel
	outputs  []mathutil.Q
}

// NewBank creates a bank from per-channel configurations.
func NewBank(configs []ChannelConfig) (*Bank, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: bank needs at least one channel", ErrInvalidChannel)
	}

	b := &Bank{
		channels: make([]*Channel, len(configs)),
		outputs:  make([]mathutil.Q, len(configs)),
	}
	for i, cfg := range configs {
		ch, err := NewChannel(cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		b.channels[i] = ch
	}
	b.latch()

	return b, nil
}

// HarmonicConfigs returns the Schumann reference channel table.
func HarmonicConfigs(tickRate float64, seed uint16, randomInit bool) []ChannelConfig {
	cfgs := make([]ChannelConfig, params.NumHarmonics)
	for i, h := range params.Schumann {
		walk := seed + uint16(i)*harmonicSeedStride
		cfgs[i] = ChannelConfig{
			Center:     mathutil.OmegaFromHz(h.CenterHz, tickRate),
			Bound:      max(mathutil.OmegaFromHz(h.DriftHz, tickRate), maxStep),
			Step:       stepFor(i),
			Period:     h.Period,
			WalkSeed:   walk,
			JitterSeed: walk ^ jitterSeedXor,
			RandomInit: randomInit,
		}
	}
	return cfgs
}

// BandConfigs returns the single-channel drift table of the internal bands.
func BandConfigs(tickRate float64, seed uint16, randomInit bool) []ChannelConfig {
	cfgs := make([]ChannelConfig, params.NumBands)
	bound := max(mathutil.OmegaFromHz(params.BandDriftHz, tickRate), maxStep)
	for i, hz := range params.BandHz {
		walk := seed + bandSeedOffset + uint16(i)*bandSeedStride
		cfgs[i] = ChannelConfig{
			Center:     mathutil.OmegaFromHz(hz, tickRate),
			Bound:      bound,
			Step:       minStep,
			Period:     params.BandPeriods[i],
			WalkSeed:   walk,
			JitterSeed: walk ^ jitterSeedXor,
			RandomInit: randomInit,
		}
	}
	return cfgs
}

// stepFor alternates step sizes so neighboring channels walk at
// different speeds.
func stepFor(i int) mathutil.Q {
	if i%2 == 0 {
		return maxStep
	}
	return minStep
}

// NewHarmonicBank creates the five-channel Schumann reference generator.
func NewHarmonicBank(tickRate float64, seed uint16, randomInit bool) (*Bank, error) {
	return NewBank(HarmonicConfigs(tickRate, seed, randomInit))
}

// NewBandBank creates the internal band drift generators.
func NewBandBank(tickRate float64, seed uint16, randomInit bool) (*Bank, error) {
	return NewBank(BandConfigs(tickRate, seed, randomInit))
}

// Tick advances every channel by one update.
func (b *Bank) Tick() {
	for _, ch := range b.channels {
		ch.Tick()
	}
	b.latch()
}

func (b *Bank) latch() {
	for i, ch := range b.channels {
		b.outputs[i] = ch.Output()
	}
}

// Outputs returns the current channel outputs. The slice is owned by the
// bank and overwritten on every Tick.
func (b *Bank) Outputs() []mathutil.Q {
	return b.outputs
}

// Output returns the output of channel i.
func (b *Bank) Output(i int) mathutil.Q {
	return b.outputs[i]
}

// Channel returns channel i.
func (b *Bank) Channel(i int) *Channel {
	return b.channels[i]
}

// Len returns the number of channels.
func (b *Bank) Len() int {
	return len(b.channels)
}

// Reset restores every channel to its seeded initial state.
func (b *Bank) Reset() {
	for _, ch := range b.channels {
		ch.Reset()
	}
	b.latch()
}

// GetLatency returns the bank latency in ticks.
func (b *Bank) GetLatency() int {
	return channelLatency
}
