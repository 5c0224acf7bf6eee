package store

import (
	"context"
	"maps"
	"sync"

	"unfair_dao/sdk"
)

// Memory is the in-process account store. Commits are serialized by a mutex,
// so a batch is checked and applied without anyone else touching the map.
type Memory struct {
	mu sync.RWMutex
	db map[string][]byte
}

var _ sdk.State = &Memory{}

func NewMemory() *Memory {
	return &Memory{db: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[key]
	if !ok {
		return nil, nil
	}
	return clone(val), nil
}

func (m *Memory) Commit(_ context.Context, batch *sdk.Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyLocked(batch)
}

func (m *Memory) applyLocked(batch *sdk.Batch) error {
	for _, key := range batch.ExpectKeys() {
		current, ok := m.db[key]
		if !ok {
			current = nil
		}
		if err := batch.Check(key, current); err != nil {
			return err
		}
	}
	for key := range batch.Deletes {
		delete(m.db, key)
	}
	for key, val := range batch.Writes {
		m.db[key] = clone(val)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Len is handy in tests to assert nothing leaked from a failed invocation.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// Snapshot copies the whole store.
func (m *Memory) Snapshot() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.db))
	for k, v := range m.db {
		out[k] = clone(v)
	}
	return out
}

func (m *Memory) load(data map[string][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.db = maps.Clone(data)
	if m.db == nil {
		m.db = make(map[string][]byte)
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
