package model

import "time"

// Interval identifies a candle sampling resolution as the exchange spells it.
type Interval string

const (
	IntervalCoarse Interval = "60M"
	IntervalFine   Interval = "5M"
)

// PriceSeries holds the ordered closing prices for one instrument, oldest first.
type PriceSeries struct {
	Symbol    string
	Interval  Interval
	Closes    []float64
	FetchedAt time.Time
}

// Latest returns the most recent close, or 0 if the series is empty.
func (p *PriceSeries) Latest() float64 {
	if len(p.Closes) == 0 {
		return 0
	}
	return p.Closes[len(p.Closes)-1]
}

// Range returns the lowest and highest close in the series.
func (p *PriceSeries) Range() (low, high float64) {
	if len(p.Closes) == 0 {
		return 0, 0
	}
	low, high = p.Closes[0], p.Closes[0]
	for _, c := range p.Closes[1:] {
		if c < low {
			low = c
		}
		if c > high {
			high = c
		}
	}
	return low, high
}

// Ticker is one entry from the exchange ticker list.
type Ticker struct {
	Symbol   string
	Price    float64
	Notional float64 // 24h traded value in quote currency
}
