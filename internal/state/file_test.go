package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty state, got %v", entries)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	started := time.Unix(1_700_000_000, 0).UTC()
	in := map[string]model.StateEntry{
		"BTC_USDT_PERP": {Zone: model.ZoneLong, Low: 100, High: 120, StartTime: started, Warned: true},
		"ETH_USDT_PERP": {Zone: model.ZoneShort, Low: 50, High: 60, StartTime: started},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	got := out["BTC_USDT_PERP"]
	if got.Zone != model.ZoneLong || got.Low != 100 || got.High != 120 || !got.Warned {
		t.Errorf("entry mismatch: %+v", got)
	}
	if !got.StartTime.Equal(started) {
		t.Errorf("start time mismatch: %v", got.StartTime)
	}
}

func TestFileStore_SaveReplaces(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err := s.Save(map[string]model.StateEntry{
		"A": {Zone: model.ZoneLong},
		"B": {Zone: model.ZoneShort},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(map[string]model.StateEntry{
		"C": {Zone: model.ZoneLong},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("save must replace, not merge: %v", out)
	}
	if _, ok := out["C"]; !ok {
		t.Error("expected only the latest mapping")
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	s := NewMemoryStore()
	in := map[string]model.StateEntry{"A": {Zone: model.ZoneLong}}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in["B"] = model.StateEntry{Zone: model.ZoneShort} // must not leak into the store

	out, _ := s.Load()
	if len(out) != 1 {
		t.Errorf("store must copy on save, got %v", out)
	}
	out["C"] = model.StateEntry{} // must not leak back
	again, _ := s.Load()
	if len(again) != 1 {
		t.Errorf("store must copy on load, got %v", again)
	}
}
