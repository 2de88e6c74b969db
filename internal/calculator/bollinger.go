package calculator

// BollingerBands returns the simple moving average ± k standard deviations
// over the last `period` closes. ok is false when fewer than `period` samples
// exist, in which case both bands are 0.
func BollingerBands(closes []float64, period int, k float64) (lower, upper float64, ok bool) {
	if period <= 0 || len(closes) < period {
		return 0, 0, false
	}
	window := closes[len(closes)-period:]
	sum := 0.0
	for _, c := range window {
		sum += c
	}
	sma := sum / float64(period)
	std := RollingStdDev(closes, period)
	return sma - k*std, sma + k*std, true
}
