// Package indicators computes the SMA/EMA price and volume indicators
// the crossover state machine consumes, including the 30-minute
// volume-EMA fallback used for order sizing when a symbol has too short
// a history in memory.
package indicators

import "math"

// Round2 rounds to 2 decimal places, half-away-from-zero. Every indicator
// step is rounded immediately, and the rounded value (not the raw float)
// feeds the next step. Halves are judged on the decimal value, so
// 1.005 rounds to 1.01 even though 1.005*100 is 100.49999999999999 in
// binary floating point.
func Round2(v float64) float64 {
	scaled := v * 100
	scaled = math.Round(scaled*1e6) / 1e6
	return math.Round(scaled) / 100
}
