package collector

import (
	"fmt"
	"math"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Series are keyed by "symbol/interval"; symbols without an explicit series
// get a generated sideways wave around BasePrice.
type MockFetcher struct {
	Series    map[string][]float64
	Tickers   []model.Ticker
	BasePrice float64
	Errs      map[string]error // forces a fetch error for a symbol
}

func (m *MockFetcher) Name() string { return "mock" }

// SeriesKey builds the lookup key used by MockFetcher.Series.
func SeriesKey(symbol string, interval model.Interval) string {
	return fmt.Sprintf("%s/%s", symbol, interval)
}

func (m *MockFetcher) FetchCloses(symbol string, interval model.Interval, limit int) (*model.PriceSeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	closes, ok := m.Series[SeriesKey(symbol, interval)]
	if !ok {
		closes = generateSidewaysCloses(m.BasePrice, limit)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Closes:    closes,
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchTickers() ([]model.Ticker, error) {
	return m.Tickers, nil
}

func generateSidewaysCloses(base float64, count int) []float64 {
	if base == 0 {
		base = 100
	}
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = base * (1 + 0.02*math.Sin(float64(i)/5))
	}
	return closes
}
