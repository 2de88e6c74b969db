package strategy

import (
	"log"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/calculator"
	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// SeriesProvider supplies closing-price series for one instrument. A failed or
// empty fetch degrades that instrument to "no signal" for the scan.
type SeriesProvider interface {
	FetchCloses(symbol string, interval model.Interval, limit int) (*model.PriceSeries, error)
}

// Analyzer runs the per-instrument analysis pipeline: indicators, zone
// classification, grid plan derivation and cooldown gating, at two candle
// resolutions.
type Analyzer struct {
	Provider SeriesProvider
	Cooldown *CooldownTracker
	Params   Params

	CoarseLimit int
	FineLimit   int

	now func() time.Time
}

// NewAnalyzer creates an Analyzer with the given collaborators.
func NewAnalyzer(provider SeriesProvider, cooldown *CooldownTracker, params Params) *Analyzer {
	return &Analyzer{
		Provider:    provider,
		Cooldown:    cooldown,
		Params:      params.withDefaults(),
		CoarseLimit: 200,
		FineLimit:   400,
		now:         time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (a *Analyzer) SetClock(now func() time.Time) { a.now = now }

// Analyze evaluates one instrument and returns its accepted signal, or nil.
// Coarse bars are analyzed first; when the coarse window is already volatile
// the fine resolution decides instead, so bursty noise on calm instruments
// never triggers.
func (a *Analyzer) Analyze(symbol string) *model.Signal {
	coarse, err := a.Provider.FetchCloses(symbol, model.IntervalCoarse, a.CoarseLimit)
	if err != nil {
		log.Printf("[WARN] fetch %s %s: %v", symbol, model.IntervalCoarse, err)
		return nil
	}

	sig, vol, std := a.Evaluate(coarse)

	if vol >= a.Params.VolThreshold {
		fine, err := a.Provider.FetchCloses(symbol, model.IntervalFine, a.FineLimit)
		if err != nil {
			log.Printf("[WARN] fetch %s %s: %v", symbol, model.IntervalFine, err)
			return nil
		}
		fineSig, fineVol, fineStd := a.Evaluate(fine)
		if fineSig == nil {
			return nil
		}
		if !a.Cooldown.Allow(symbol, fineVol, fineStd) {
			return nil
		}
		return fineSig
	}

	if sig == nil {
		return nil
	}
	if !a.Cooldown.Allow(symbol, vol, std) {
		return nil
	}
	return sig
}

// Evaluate runs the pure analysis over one series. It returns the candidate
// signal (nil when the instrument does not qualify) along with the window
// volatility percentage and standard deviation used for cooldown scaling.
func (a *Analyzer) Evaluate(series *model.PriceSeries) (*model.Signal, float64, float64) {
	closes := series.Closes
	price := series.Latest()
	low, high := series.Range()

	std := calculator.RollingStdDev(closes, a.Params.StdDevPeriod)
	var vol float64
	if price > 0 && high > low {
		vol = (high - low) / price * 100
	}

	if len(closes) < a.Params.MinSamples || high-low <= 0 || price <= 0 {
		return nil, vol, std
	}

	ind := a.computeIndicators(closes, std, vol)

	zone, ok := Classify(closes, low, high, price, ind, a.Params)
	if !ok {
		return nil, vol, std
	}

	plan, ok := BuildPlan(low, high, price, std, a.Params)
	if !ok {
		return nil, vol, std
	}

	return &model.Signal{
		Symbol:     series.Symbol,
		Zone:       zone,
		Plan:       plan,
		Indicators: ind,
		Interval:   series.Interval,
		Price:      price,
		Score:      Score(vol, plan),
		At:         a.now(),
	}, vol, std
}

func (a *Analyzer) computeIndicators(closes []float64, std, vol float64) model.IndicatorSet {
	ind := model.IndicatorSet{
		RSI:           calculator.RSI(closes, a.Params.RSIPeriod),
		StdDev:        std,
		VolatilityPct: vol,
	}
	ind.BollingerLow, ind.BollingerHigh, ind.HasBollinger =
		calculator.BollingerBands(closes, a.Params.BollingerPeriod, a.Params.BollingerK)
	ind.MACDLine, ind.MACDSignal, ind.MACDHist, ind.HasMACD =
		calculator.MACD(closes, a.Params.MACDFast, a.Params.MACDSlow, a.Params.MACDSignal)
	return ind
}
