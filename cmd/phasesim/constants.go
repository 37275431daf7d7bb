package main

// CLI defaults
const (
	defaultScenario   = "steady"
	defaultWAVColumns = "overall,pac_gain,harmonic_gain,phi0_align,spacing_index"
	minScriptTicks    = 1
)

// Progress reporting
const (
	progressInterval = 10  // Log progress every N% when stderr is not a terminal
	percentScale     = 100 // Fraction to percent
	terminalRefresh  = 1   // Redraw the terminal progress line every N%
)
