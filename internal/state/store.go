package state

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// Store persists the instrument to StateEntry mapping across scans. The scan
// loop reads it once at start and writes the fully replaced mapping once at
// the end; Save replaces, it never merges.
type Store interface {
	Load() (map[string]model.StateEntry, error)
	Save(entries map[string]model.StateEntry) error
}
