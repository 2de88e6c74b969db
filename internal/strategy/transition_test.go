package strategy

import (
	"testing"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

func testSignal(symbol string, zone model.Zone, low, high, price, cycleDays float64) *model.Signal {
	return &model.Signal{
		Symbol: symbol,
		Zone:   zone,
		Price:  price,
		Plan:   model.GridPlan{Low: low, High: high, SpacingPct: 0.5, GridCount: 20, CycleDays: cycleDays},
	}
}

func alertsByType(alerts []model.Alert) map[model.TransitionType][]model.Alert {
	out := map[model.TransitionType][]model.Alert{}
	for _, a := range alerts {
		out[a.Type] = append(out[a.Type], a)
	}
	return out
}

func TestTransition_Diff(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	started := now.Add(-2 * time.Hour)
	prev := map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: started},
		"B": {Zone: model.ZoneShort, Low: 50, High: 60, StartTime: started},
	}
	signals := map[string]*model.Signal{
		"A": testSignal("A", model.ZoneLong, 100, 120, 110, 1.0),
		"C": testSignal("C", model.ZoneLong, 10, 12, 10.5, 1.0),
	}

	res := Transition(prev, signals, now, DefaultParams())

	if len(res.State) != 2 {
		t.Fatalf("expected state {A, C}, got %v", res.State)
	}
	if a, ok := res.State["A"]; !ok || !a.StartTime.Equal(started) {
		t.Errorf("A must continue with its start time preserved, got %+v", a)
	}
	if c, ok := res.State["C"]; !ok || !c.StartTime.Equal(now) {
		t.Errorf("C must be new with start time now, got %+v", c)
	}
	if _, ok := res.State["B"]; ok {
		t.Error("B must be removed from state")
	}

	byType := alertsByType(res.Alerts)
	if len(byType[model.TransitionNew]) != 1 || byType[model.TransitionNew][0].Symbol != "C" {
		t.Errorf("expected one New alert for C, got %v", byType[model.TransitionNew])
	}
	if len(byType[model.TransitionExitedDropped]) != 1 {
		t.Fatalf("expected one dropped exit for B, got %v", byType[model.TransitionExitedDropped])
	}
	dropped := byType[model.TransitionExitedDropped][0]
	if dropped.Symbol != "B" || dropped.ProxyPrice != 55 {
		t.Errorf("dropped exit must use the range midpoint as proxy price, got %+v", dropped)
	}
	if len(res.Alerts) != 2 {
		t.Errorf("continuing A must not raise an alert, got %v", res.Alerts)
	}
}

func TestTransition_FlipResetsLifetime(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	started := now.Add(-20 * time.Hour)
	prev := map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: started, Warned: true},
	}
	signals := map[string]*model.Signal{
		"A": testSignal("A", model.ZoneShort, 100, 120, 118, 1.0),
	}

	res := Transition(prev, signals, now, DefaultParams())

	byType := alertsByType(res.Alerts)
	if len(byType[model.TransitionFlipped]) != 1 {
		t.Fatalf("expected a Flipped alert, got %v", res.Alerts)
	}
	if byType[model.TransitionFlipped][0].PrevZone != model.ZoneLong {
		t.Error("flip alert must carry the previous zone")
	}
	entry := res.State["A"]
	if entry.Zone != model.ZoneShort {
		t.Errorf("state must carry the new zone, got %s", entry.Zone)
	}
	if !entry.StartTime.Equal(now) {
		t.Error("flip must reset the start time")
	}
	if entry.Warned {
		t.Error("flip must reset the warned latch")
	}
}

func TestTransition_ExitedRange(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	prev := map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: now.Add(-time.Hour)},
	}
	// Same zone, but the price broke the old stop band (120*1.01).
	signals := map[string]*model.Signal{
		"A": testSignal("A", model.ZoneLong, 100, 130, 129, 1.0),
	}

	res := Transition(prev, signals, now, DefaultParams())

	byType := alertsByType(res.Alerts)
	if len(byType[model.TransitionExitedRange]) != 1 {
		t.Fatalf("expected an ExitedRange alert, got %v", res.Alerts)
	}
	entry := res.State["A"]
	if !entry.StartTime.Equal(now) {
		t.Error("range exit must reopen with a fresh start time")
	}
	if entry.Low != 100 || entry.High != 130 {
		t.Errorf("state must carry the new plan range, got %.0f/%.0f", entry.Low, entry.High)
	}
}

func TestTransition_CycleWarningFiresOnce(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	// 1.0-day cycle, 23h elapsed: remaining 1h <= max(1h, 2.4h) window.
	prev := map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: now.Add(-23 * time.Hour)},
	}
	signals := map[string]*model.Signal{
		"A": testSignal("A", model.ZoneLong, 100, 120, 110, 1.0),
	}

	res := Transition(prev, signals, now, DefaultParams())
	byType := alertsByType(res.Alerts)
	if len(byType[model.TransitionCycleWarning]) != 1 {
		t.Fatalf("expected one cycle warning, got %v", res.Alerts)
	}
	if !res.State["A"].Warned {
		t.Fatal("warned latch must be set after the warning")
	}

	// Next scan with the same conditions must not warn again.
	res2 := Transition(res.State, signals, now.Add(30*time.Minute), DefaultParams())
	if len(alertsByType(res2.Alerts)[model.TransitionCycleWarning]) != 0 {
		t.Error("cycle warning must fire at most once per entry lifetime")
	}
	if !res2.State["A"].Warned {
		t.Error("warned latch must persist while the entry continues")
	}
}

func TestTransition_NoWarningEarlyInCycle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	prev := map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: now.Add(-time.Hour)},
	}
	signals := map[string]*model.Signal{
		"A": testSignal("A", model.ZoneLong, 100, 120, 110, 1.0),
	}
	res := Transition(prev, signals, now, DefaultParams())
	if len(alertsByType(res.Alerts)[model.TransitionCycleWarning]) != 0 {
		t.Error("no warning expected with 23h of a 24h cycle remaining")
	}
}
