package calculator

// MACD computes the MACD line, signal line and histogram using exponential
// moving averages with smoothing factor 2/(n+1). Both EMAs are seeded at the
// first close and updated in order for every sample; the signal line is the
// EMA of the resulting MACD values, seeded at the first MACD value. ok is
// false when fewer than `slow` closes exist.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist float64, ok bool) {
	if fast <= 0 || slow <= 0 || signal <= 0 || len(closes) < slow {
		return 0, 0, 0, false
	}

	fastK := 2.0 / float64(fast+1)
	slowK := 2.0 / float64(slow+1)

	fastEMA, slowEMA := closes[0], closes[0]
	macd := make([]float64, len(closes))
	macd[0] = 0
	for i := 1; i < len(closes); i++ {
		fastEMA = closes[i]*fastK + fastEMA*(1-fastK)
		slowEMA = closes[i]*slowK + slowEMA*(1-slowK)
		macd[i] = fastEMA - slowEMA
	}

	sigK := 2.0 / float64(signal+1)
	sig = macd[0]
	for i := 1; i < len(macd); i++ {
		sig = macd[i]*sigK + sig*(1-sigK)
	}

	line = macd[len(macd)-1]
	return line, sig, line - sig, true
}
