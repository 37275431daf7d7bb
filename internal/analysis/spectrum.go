package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/phicore/phasectl/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a one-sided magnitude spectrum.
type Spectrum struct {
	// Freqs are the bin centers in Hz.
	Freqs []float64

	// Magnitude are the one-sided amplitudes per bin.
	Magnitude []float64
}

// ComputeSpectrum returns the magnitude spectrum of x sampled at rate.
// The mean is removed first so drift around a center does not hide in
// the DC bin.
func ComputeSpectrum(x []float64, rate float64) (Spectrum, error) {
	n := len(x)
	if n < minSpectrumLength {
		return Spectrum{}, fmt.Errorf("%w: need at least %d samples, got %d",
			ErrTooShort, minSpectrumLength, n)
	}

	ops := simdops.Float64Ops()

	centered := make([]float64, n)
	copy(centered, x)
	floats.AddConst(-ops.Mean(x), centered)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	s := Spectrum{
		Freqs:     make([]float64, len(coeffs)),
		Magnitude: make([]float64, len(coeffs)),
	}
	for i, c := range coeffs {
		s.Freqs[i] = fft.Freq(i) * rate
		s.Magnitude[i] = cmplx.Abs(c)
	}
	ops.Scale(s.Magnitude, s.Magnitude, oneSidedScale/float64(n))

	return s, nil
}

// Dominant returns the frequency and magnitude of the strongest non-DC
// bin. A spectrum with no bins past DC yields zeros.
func (s Spectrum) Dominant() (freq, magnitude float64) {
	if len(s.Magnitude) < 2 {
		return 0, 0
	}
	i := floats.MaxIdx(s.Magnitude[1:]) + 1
	return s.Freqs[i], s.Magnitude[i]
}

// Band returns the summed magnitude of the bins in [lo, hi] Hz.
func (s Spectrum) Band(lo, hi float64) float64 {
	total := 0.0
	for i, f := range s.Freqs {
		if f >= lo && f <= hi {
			total += s.Magnitude[i]
		}
	}
	return total
}
