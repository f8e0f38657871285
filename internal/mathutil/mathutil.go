// Package mathutil holds the numeric helpers shared by the scorer and the
// ledger: fixed-decimal rounding for money and signals, and clamping.
package mathutil

import "math"

// Round2 rounds to cents. Stakes are stored at this precision.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round3 rounds to 3 decimals. Signals are reported at this precision.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// Round4 rounds to 4 decimals. Capital and pnl are stored at this precision
// so fractional payouts do not accumulate float noise.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
