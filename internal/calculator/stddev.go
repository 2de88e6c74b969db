package calculator

import "math"

// RollingStdDev computes the population standard deviation of the last
// `period` closes. Returns 0 when fewer than `period` samples exist.
func RollingStdDev(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		return 0
	}
	window := closes[len(closes)-period:]
	mean := 0.0
	for _, c := range window {
		mean += c
	}
	mean /= float64(period)

	variance := 0.0
	for _, c := range window {
		d := c - mean
		variance += d * d
	}
	variance /= float64(period)
	return math.Sqrt(variance)
}
