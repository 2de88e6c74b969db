package collector

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

var (
	wrappedBases = map[string]bool{"WBTC": true, "WETH": true, "WSOL": true, "WBNB": true}
	stableBases  = map[string]bool{"USDT": true, "USDC": true, "BUSD": true, "DAI": true}
	excludeBases = map[string]bool{"LUNA": true, "LUNC": true, "USTC": true}

	leveragedSuffixes = []string{"UP", "DOWN", "3L", "3S", "5L", "5S"}
)

// Universe discovers the ranked set of instruments worth a full analysis each
// scan: liquid, non-synthetic symbols ranked by range width relative to their
// traded volume.
type Universe struct {
	Fetcher     Fetcher
	MinPrice    float64
	MinNotional float64
	TopN        int
	QuickLimit  int // candles fetched for candidate scoring
}

// NewUniverse creates a Universe provider with the production defaults.
func NewUniverse(fetcher Fetcher) *Universe {
	return &Universe{
		Fetcher:     fetcher,
		MinPrice:    0.005,
		MinNotional: 100_000,
		TopN:        30,
		QuickLimit:  50,
	}
}

// Eligible reports whether the symbol passes the exclusion rules: no wrapped
// assets, stablecoins, delisted bases or leveraged tokens.
func Eligible(symbol string) bool {
	base := strings.SplitN(strings.ToUpper(symbol), "_", 2)[0]
	if wrappedBases[base] || stableBases[base] || excludeBases[base] {
		return false
	}
	for _, suffix := range leveragedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	return true
}

// Discover returns the top candidates by width score, best first. Candidates
// whose quick fetch fails are skipped, and tickers with notional volume in
// []model.Ticker form for the survivors are kept alongside.
func (u *Universe) Discover() ([]model.Ticker, error) {
	tickers, err := u.Fetcher.FetchTickers()
	if err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}

	type scored struct {
		ticker model.Ticker
		score  float64
	}
	var candidates []scored
	for _, t := range tickers {
		if t.Price < u.MinPrice || t.Notional < u.MinNotional || !Eligible(t.Symbol) {
			continue
		}
		series, err := u.Fetcher.FetchCloses(t.Symbol, model.IntervalCoarse, u.QuickLimit)
		if err != nil {
			log.Printf("[WARN] skip %s: %v", t.Symbol, err)
			continue
		}
		low, high := series.Range()
		if t.Price <= 0 || high <= low {
			continue
		}
		widthPct := (high - low) / t.Price * 100
		score := widthPct / math.Max(1, math.Log10(t.Notional))
		candidates = append(candidates, scored{ticker: t, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > u.TopN {
		candidates = candidates[:u.TopN]
	}

	picked := make([]model.Ticker, len(candidates))
	for i, c := range candidates {
		picked[i] = c.ticker
	}
	return picked, nil
}
