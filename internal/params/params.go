// Package params centralizes the design constants shared by more than one
// control-plane component: the update rate, the internal φⁿ band plan and
// the Schumann reference table.
package params

// TickRate is the reference update rate in ticks per second.
const TickRate = 4000.0

// Array sizes.
const (
	NumBands     = 5  // theta, alpha, beta-low, beta-high, gamma
	NumHarmonics = 5  // Schumann F1..F5
	NumPairs     = 4  // adjacent band ratios
	Oscillators  = 21 // oscillators in the reference network
)

// Band indices.
const (
	BandTheta = iota
	BandAlpha
	BandBetaLow
	BandBetaHigh
	BandGamma
)

// Harmonic indices (F1..F5).
const (
	F1 = iota
	F2
	F3
	F4
	F5
)

// BandHz holds the nominal φⁿ band centers: theta·φⁿ for n = 0..4.
var BandHz = [NumBands]float64{5.89, 9.53, 15.42, 24.95, 40.36}

// BandDriftHz is the drift half-range applied to every internal band.
const BandDriftHz = 0.3

// BandPeriods are the slow-update periods of the band drift channels.
var BandPeriods = [NumBands]int{2000, 2400, 2800, 3000, 3200}

// Harmonic describes one Schumann reference harmonic.
type Harmonic struct {
	Name      string
	CenterHz  float64 // nominal frequency
	DriftHz   float64 // drift half-range
	Period    int     // slow-update period in ticks
	QFactor   float64 // quality factor
	Amplitude float64 // relative amplitude
}

// Schumann is the reference harmonic table.
// F1 drifts three times faster than F2, producing the seeker effect
// that opens natural alignment windows.
var Schumann = [NumHarmonics]Harmonic{
	{Name: "F1", CenterHz: 7.6, DriftHz: 0.5, Period: 400, QFactor: 7.5, Amplitude: 10},
	{Name: "F2", CenterHz: 13.75, DriftHz: 0.8, Period: 1200, QFactor: 9.5, Amplitude: 8},
	{Name: "F3", CenterHz: 20.0, DriftHz: 1.0, Period: 800, QFactor: 15.5, Amplitude: 3.5},
	{Name: "F4", CenterHz: 25.0, DriftHz: 1.5, Period: 1000, QFactor: 8.5, Amplitude: 2},
	{Name: "F5", CenterHz: 32.0, DriftHz: 2.0, Period: 1600, QFactor: 7.0, Amplitude: 1.5},
}

// MaxQFactor returns the largest quality factor in the table.
func MaxQFactor() float64 {
	m := 0.0
	for _, h := range Schumann {
		m = max(m, h.QFactor)
	}
	return m
}

// MaxAmplitude returns the largest relative amplitude in the table.
func MaxAmplitude() float64 {
	m := 0.0
	for _, h := range Schumann {
		m = max(m, h.Amplitude)
	}
	return m
}
