package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// FileStore persists the state mapping as a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore creates a Store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the state mapping. Returns an empty map if the file doesn't exist.
func (s *FileStore) Load() (map[string]model.StateEntry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]model.StateEntry{}, nil
		}
		return nil, err
	}
	entries := map[string]model.StateEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes the full mapping, replacing whatever was stored before.
func (s *FileStore) Save(entries map[string]model.StateEntry) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}
