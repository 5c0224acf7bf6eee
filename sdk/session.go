package sdk

import (
	"context"
	"fmt"
	"maps"
)

// Session buffers the reads and writes of a single invocation. Nothing reaches
// the State until Commit, and Rollback throws all of it away, logs included.
type Session struct {
	ctx   context.Context
	state State

	reads     map[string][]byte
	writes    map[string][]byte
	deletions map[string]bool
	creates   map[string]bool
	logs      []string
}

func NewSession(ctx context.Context, state State) *Session {
	s := &Session{ctx: ctx, state: state}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.reads = make(map[string][]byte)
	s.writes = make(map[string][]byte)
	s.deletions = make(map[string]bool)
	s.creates = make(map[string]bool)
	s.logs = make([]string, 0)
}

// Get returns the staged value or falls through to the State once per key.
func (s *Session) Get(key string) ([]byte, error) {
	if s.deletions[key] {
		return nil, nil
	}
	if v, ok := s.writes[key]; ok {
		return v, nil
	}
	if v, ok := s.reads[key]; ok {
		return v, nil
	}
	v, err := s.state.Get(s.ctx, key)
	if err != nil {
		return nil, fmt.Errorf("state get %q: %w", key, err)
	}
	s.reads[key] = v
	return v, nil
}

// Set stages a write.
func (s *Session) Set(key string, value []byte) {
	s.writes[key] = value
	delete(s.deletions, key)
}

// Create stages a write for a key that must not exist yet.
func (s *Session) Create(key string, value []byte) error {
	existing, err := s.Get(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrKeyExists, key)
	}
	s.Set(key, value)
	s.creates[key] = true
	return nil
}

// Delete stages a removal.
func (s *Session) Delete(key string) {
	delete(s.writes, key)
	delete(s.creates, key)
	s.deletions[key] = true
}

// Log stages an event line; it is only visible after Commit.
func (s *Session) Log(line string) {
	s.logs = append(s.logs, line)
}

// Commit sends the staged changes as one batch and returns the published logs.
func (s *Session) Commit() ([]string, error) {
	batch := &Batch{
		Expect:  maps.Clone(s.reads),
		Writes:  maps.Clone(s.writes),
		Deletes: maps.Clone(s.deletions),
		Creates: maps.Clone(s.creates),
	}
	if !batch.Empty() {
		if err := s.state.Commit(s.ctx, batch); err != nil {
			s.reset()
			return nil, err
		}
	}
	logs := s.logs
	s.reset()
	return logs, nil
}

// Rollback drops every staged read, write and log.
func (s *Session) Rollback() {
	s.reset()
}
