package model

// IndicatorSet holds all technical indicators computed from one price series.
// Bollinger and MACD values are only meaningful when their HasX flag is set;
// RSI defaults to the neutral 50 on short series.
type IndicatorSet struct {
	RSI           float64
	BollingerLow  float64
	BollingerHigh float64
	HasBollinger  bool
	MACDLine      float64
	MACDSignal    float64
	MACDHist      float64
	HasMACD       bool
	StdDev        float64
	VolatilityPct float64 // close-range width as a percentage of the latest price
}
