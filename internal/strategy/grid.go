package strategy

import (
	"math"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

const volEpsilon = 1e-9

// BuildPlan derives the grid parameters for the given close range. The range
// is widened first when the latest price sits beyond its stop buffer, so all
// derived values reflect the widened bounds. ok is false when the estimated
// cycle time falls outside (0, CycleMax].
func BuildPlan(low, high, price, stdDev float64, p Params) (model.GridPlan, bool) {
	p = p.withDefaults()

	low, high = widenRange(low, high, price, p.StopBuffer)
	priceRange := high - low
	if priceRange <= 0 || price <= 0 {
		return model.GridPlan{}, false
	}

	volatilityPct := priceRange / price * 100
	volFactor := math.Max(0.1, volatilityPct+stdDev*100)

	spacing := clamp(p.SpacingTarget*(30/math.Max(volFactor, 1)), p.SpacingMin, p.SpacingMax)

	gridBase := priceRange / (price * spacing / 100)
	var grids int
	if volatilityPct < 1.5 {
		grids = clampInt(int(math.Floor(gridBase/2)), 4, 200)
	} else {
		grids = clampInt(int(math.Floor(gridBase)), 10, 200)
	}

	cycle := round1(float64(grids) * spacing / (volFactor + volEpsilon) * 2)
	if cycle <= 0 || cycle > p.CycleMax {
		return model.GridPlan{}, false
	}

	return model.GridPlan{
		Low:        low,
		High:       high,
		SpacingPct: spacing,
		GridCount:  grids,
		CycleDays:  cycle,
	}, true
}

// widenRange stretches the breached side when the price has moved past the
// stop buffer of the current bounds.
func widenRange(low, high, price, buffer float64) (float64, float64) {
	if price < low*(1-buffer) {
		low = math.Min(price, low*0.95)
	}
	if price > high*(1+buffer) {
		high = math.Max(price, high*1.05)
	}
	return low, high
}

// Score rates an opportunity; higher is better. Rewards high volatility,
// fewer grids, tighter spacing and shorter cycles.
func Score(volatilityPct float64, plan model.GridPlan) float64 {
	s := volatilityPct*2 +
		(200-float64(plan.GridCount))/200*10 +
		(1.5-math.Min(plan.SpacingPct, 1.5))*15 +
		(1.5/math.Max(plan.CycleDays, 0.1))*10
	return round1(s)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
