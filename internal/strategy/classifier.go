package strategy

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// votes holds the per-direction tallies of the three indicator votes.
type votes struct {
	long, short int
}

// Classify decides the entry zone for the given series position and
// indicators. ok is false when no direction reaches the vote threshold or the
// price is too centered in its range.
//
// Long and Short thresholds are evaluated independently; when both qualify,
// Long is checked first and wins.
func Classify(closes []float64, low, high, price float64, ind model.IndicatorSet, p Params) (model.Zone, bool) {
	p = p.withDefaults()

	if len(closes) < p.MinSamples {
		return "", false
	}
	priceRange := high - low
	if priceRange <= 0 || price <= 0 {
		return "", false
	}

	pos := (price - low) / priceRange
	if pos >= p.PositionThreshold && pos <= 1-p.PositionThreshold {
		return "", false
	}

	v := tallyVotes(price, ind, p)
	switch p.VotingPolicy {
	case model.VotingStrict:
		if v.long == 3 {
			return model.ZoneLong, true
		}
		if v.short == 3 {
			return model.ZoneShort, true
		}
	default: // relaxed: 2 of 3
		if v.long >= 2 {
			return model.ZoneLong, true
		}
		if v.short >= 2 {
			return model.ZoneShort, true
		}
	}
	return "", false
}

func tallyVotes(price float64, ind model.IndicatorSet, p Params) votes {
	var v votes

	if ind.RSI < p.RSIOversold {
		v.long++
	}
	if ind.RSI > p.RSIOverbought {
		v.short++
	}

	if ind.HasBollinger {
		if price < ind.BollingerLow {
			v.long++
		}
		if price > ind.BollingerHigh {
			v.short++
		}
	}

	if ind.HasMACD {
		if ind.MACDLine > ind.MACDSignal {
			v.long++
		}
		if ind.MACDLine < ind.MACDSignal {
			v.short++
		}
	}

	return v
}
