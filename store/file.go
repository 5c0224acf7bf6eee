package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"unfair_dao/sdk"
)

// File keeps the accounts in memory and rewrites a JSON snapshot after every
// commit. Values are binary, so they end up base64 encoded in the file.
type File struct {
	*Memory
	filename string
}

var _ sdk.State = &File{}

// OpenFile loads filename if it exists, otherwise starts empty.
func OpenFile(filename string) (*File, error) {
	f := &File{Memory: NewMemory(), filename: filename}
	if err := f.loadFromFile(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Commit(_ context.Context, batch *sdk.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	previous := make(map[string][]byte, len(f.db))
	for k, v := range f.db {
		previous[k] = v
	}
	if err := f.applyLocked(batch); err != nil {
		return err
	}
	if err := f.saveToFile(); err != nil {
		// the file is the source of truth across restarts, keep memory in line with it
		f.db = previous
		return err
	}
	return nil
}

// saveToFile writes the full map, caller holds the lock
func (f *File) saveToFile() error {
	data, err := json.MarshalIndent(f.db, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := f.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.filename)
}

func (f *File) loadFromFile() error {
	data, err := os.ReadFile(f.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var db map[string][]byte
	if err := json.Unmarshal(data, &db); err != nil {
		return err
	}
	f.load(db)
	return nil
}
