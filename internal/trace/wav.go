package trace

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes the named columns as an interleaved 16-bit PCM WAV at
// the trace tick rate, one channel per column. Values are scaled so that
// ±FullScale maps to full-scale samples; anything beyond is clipped.
// With no names every column is written.
func (t *Trace) WriteWAV(w io.WriteSeeker, names ...string) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}
	if len(names) == 0 {
		names = t.names
	}

	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		cols[i] = col
	}

	rate := int(math.Round(t.TickRate))
	channels := len(cols)

	enc := wav.NewEncoder(w, rate, wavBitDepth, channels, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           make([]int, t.Len()*channels),
		SourceBitDepth: wavBitDepth,
	}
	for i := range t.Len() {
		for c, col := range cols {
			buf.Data[i*channels+c] = toPCM(col[i])
		}
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// ReadWAV reads a WAV written by WriteWAV back into a trace. Channels are
// named by names when given, otherwise "ch0", "ch1", ...
func ReadWAV(r io.ReadSeeker, names ...string) (*Trace, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV stream", ErrColumnMismatch)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}

	channels := buf.Format.NumChannels
	if len(names) == 0 {
		names = make([]string, channels)
		for c := range names {
			names[c] = fmt.Sprintf("ch%d", c)
		}
	}
	if len(names) != channels {
		return nil, fmt.Errorf("%w: %d names for %d channels", ErrColumnMismatch, len(names), channels)
	}

	t, err := New(float64(buf.Format.SampleRate), names...)
	if err != nil {
		return nil, err
	}

	row := make([]float64, channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		for c := range row {
			row[c] = fromPCM(buf.Data[i+c])
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTrace
	}

	return t, nil
}

func toPCM(v float64) int {
	s := math.Round(v / FullScale * wavMaxValue)
	return int(max(-wavMaxValue, min(wavMaxValue, s)))
}

func fromPCM(s int) float64 {
	return float64(s) / wavMaxValue * FullScale
}
