package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// DefaultBaseURL is the public Pionex REST endpoint.
const DefaultBaseURL = "https://api.pionex.com"

// PionexFetcher implements Fetcher against the Pionex REST API, PERP market.
type PionexFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewPionexFetcher creates a new fetcher with optional proxy support.
func NewPionexFetcher(baseURL, proxyURL string) *PionexFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PionexFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

func (f *PionexFetcher) Name() string { return "pionex" }

// pionexKline is one candle as returned by the API; numeric fields arrive as
// JSON strings.
type pionexKline struct {
	Time  int64  `json:"time"`
	Close string `json:"close"`
}

type pionexKlinesResponse struct {
	Data struct {
		Klines []pionexKline `json:"klines"`
	} `json:"data"`
}

// FetchCloses returns up to `limit` closing prices, oldest first. The caller
// must tolerate fewer samples than requested.
func (f *PionexFetcher) FetchCloses(symbol string, interval model.Interval, limit int) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/api/v1/market/klines?symbol=%s&interval=%s&limit=%d&type=PERP",
		f.BaseURL, url.QueryEscape(symbol), interval, limit)
	body, err := f.get(endpoint)
	if err != nil {
		return nil, err
	}

	var parsed pionexKlinesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}
	klines := parsed.Data.Klines
	if len(klines) == 0 {
		return nil, fmt.Errorf("no klines for %s", symbol)
	}
	sort.Slice(klines, func(i, j int) bool { return klines[i].Time < klines[j].Time })

	closes := make([]float64, 0, len(klines))
	for _, k := range klines {
		c, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", k.Close, err)
		}
		closes = append(closes, c)
	}

	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Closes:    closes,
		FetchedAt: time.Now(),
	}, nil
}

type pionexTickersResponse struct {
	Data struct {
		Tickers []struct {
			Symbol string `json:"symbol"`
			Close  string `json:"close"`
			Amount string `json:"amount"`
		} `json:"tickers"`
	} `json:"data"`
}

// FetchTickers returns the full PERP ticker list.
func (f *PionexFetcher) FetchTickers() ([]model.Ticker, error) {
	body, err := f.get(f.BaseURL + "/api/v1/market/tickers?type=PERP")
	if err != nil {
		return nil, err
	}

	var parsed pionexTickersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode tickers: %w", err)
	}

	tickers := make([]model.Ticker, 0, len(parsed.Data.Tickers))
	for _, t := range parsed.Data.Tickers {
		price, err := strconv.ParseFloat(t.Close, 64)
		if err != nil {
			continue
		}
		notional, err := strconv.ParseFloat(t.Amount, 64)
		if err != nil {
			continue
		}
		tickers = append(tickers, model.Ticker{Symbol: t.Symbol, Price: price, Notional: notional})
	}
	return tickers, nil
}

func (f *PionexFetcher) get(endpoint string) ([]byte, error) {
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pionex API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
