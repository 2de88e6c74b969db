package state

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	entries map[string]model.StateEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]model.StateEntry{}}
}

func (s *MemoryStore) Load() (map[string]model.StateEntry, error) {
	out := make(map[string]model.StateEntry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(entries map[string]model.StateEntry) error {
	s.entries = make(map[string]model.StateEntry, len(entries))
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}
