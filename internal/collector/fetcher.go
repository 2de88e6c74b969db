package collector

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchCloses(symbol string, interval model.Interval, limit int) (*model.PriceSeries, error)
	FetchTickers() ([]model.Ticker, error)
	Name() string
}
