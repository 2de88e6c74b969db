package calculator

// epsilon floors the average loss so RS never divides by zero.
const epsilon = 1e-9

// RSI computes the Wilder-smoothed Relative Strength Index over the given
// period. The seed averages come from the first `period` deltas, then each
// remaining delta is folded in with Wilder smoothing. Returns the neutral 50
// when fewer than period+1 closes are supplied.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss < epsilon {
		avgLoss = epsilon
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
