package strategy

import (
	"fmt"
	"sort"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// TransitionResult is the outcome of diffing one scan against the previous
// persisted state: the fully replaced state map and the alerts to deliver.
type TransitionResult struct {
	State  map[string]model.StateEntry
	Alerts []model.Alert
}

// Transition classifies every instrument of the current scan against the
// previous state. Instruments present before but absent now produce a dropped
// exit synthesized from the midpoint of their last known range. The returned
// state replaces the previous one entirely.
//
// A cycle-completion warning fires at most once per entry lifetime, when the
// remaining estimated cycle time is within max(1h, 10% of the cycle). A zone
// flip starts a fresh lifetime: start time and the warned latch both reset,
// since the cycle estimate is recomputed for the new direction.
func Transition(prev map[string]model.StateEntry, signals map[string]*model.Signal, now time.Time, p Params) TransitionResult {
	p = p.withDefaults()
	res := TransitionResult{State: make(map[string]model.StateEntry, len(signals))}

	for _, symbol := range sortedKeys(signals) {
		sig := signals[symbol]
		entry := model.StateEntry{
			Zone:      sig.Zone,
			Low:       sig.Plan.Low,
			High:      sig.Plan.High,
			StartTime: now,
		}

		old, had := prev[symbol]
		switch {
		case !had:
			res.Alerts = append(res.Alerts, alert(symbol, model.TransitionNew, sig, now, "new grid opportunity"))

		case old.Zone != sig.Zone:
			a := alert(symbol, model.TransitionFlipped, sig, now,
				fmt.Sprintf("zone flipped %s to %s", old.Zone, sig.Zone))
			a.PrevZone = old.Zone
			res.Alerts = append(res.Alerts, a)

		case sig.Price < old.Low*(1-p.StopBuffer) || sig.Price > old.High*(1+p.StopBuffer):
			// Close the breached range and reopen on the current plan.
			res.Alerts = append(res.Alerts, alert(symbol, model.TransitionExitedRange, sig, now, "price left grid range"))

		default:
			// Continuing: lifetime carries forward, range and zone refresh.
			entry.StartTime = old.StartTime
			entry.Warned = old.Warned
		}

		if !entry.Warned && cycleNearCompletion(entry.StartTime, sig.Plan.CycleDays, now) {
			res.Alerts = append(res.Alerts, alert(symbol, model.TransitionCycleWarning, sig, now, "grid cycle near completion"))
			entry.Warned = true
		}

		res.State[symbol] = entry
	}

	for _, symbol := range sortedStateKeys(prev) {
		if _, ok := signals[symbol]; ok {
			continue
		}
		old := prev[symbol]
		res.Alerts = append(res.Alerts, model.Alert{
			Symbol:     symbol,
			Type:       model.TransitionExitedDropped,
			PrevZone:   old.Zone,
			ProxyPrice: (old.Low + old.High) / 2,
			Reason:     "no longer qualifies",
			At:         now,
		})
	}

	return res
}

// cycleNearCompletion reports whether the remaining estimated cycle time is
// within the warning window.
func cycleNearCompletion(start time.Time, cycleDays float64, now time.Time) bool {
	total := time.Duration(cycleDays * 24 * float64(time.Hour))
	if total <= 0 {
		return false
	}
	window := time.Duration(float64(total) * 0.1)
	if window < time.Hour {
		window = time.Hour
	}
	remaining := total - now.Sub(start)
	return remaining <= window
}

func alert(symbol string, t model.TransitionType, sig *model.Signal, now time.Time, reason string) model.Alert {
	return model.Alert{Symbol: symbol, Type: t, Signal: sig, Reason: reason, At: now}
}

func sortedKeys(m map[string]*model.Signal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStateKeys(m map[string]model.StateEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
