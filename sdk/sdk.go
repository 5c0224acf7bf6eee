package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrKeyExists is returned when a key that had to be created is already occupied.
	ErrKeyExists = errors.New("key already exists")
	// ErrConflict means a value read during the invocation changed before commit.
	ErrConflict = errors.New("state changed since it was read")
)

// State is the account store the contract runs against. Get returns nil for a
// missing key. Commit applies the whole batch or nothing.
type State interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Commit(ctx context.Context, batch *Batch) error
	Close() error
}

// Batch carries one invocation's pending changes.
// Expect holds the value seen for every key read; a nil entry means the key was absent.
// Creates marks the keys the invocation created, they must still be absent.
type Batch struct {
	Expect  map[string][]byte
	Writes  map[string][]byte
	Deletes map[string]bool
	Creates map[string]bool
}

// Empty reports whether committing the batch would change anything.
func (b *Batch) Empty() bool {
	return len(b.Writes) == 0 && len(b.Deletes) == 0
}

// Keys lists every key the batch touches, used by backends that need to lock or watch.
func (b *Batch) Keys() []string {
	seen := make(map[string]bool, len(b.Expect)+len(b.Writes)+len(b.Deletes))
	keys := make([]string, 0, len(seen))
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b.Expect {
		add(k)
	}
	for k := range b.Writes {
		add(k)
	}
	for k := range b.Deletes {
		add(k)
	}
	return keys
}

// ExpectKeys lists the read set in the order backends check it: created keys
// first, then the rest, each group sorted. A lost create race therefore
// reports ErrKeyExists rather than ErrConflict.
func (b *Batch) ExpectKeys() []string {
	created := make([]string, 0, len(b.Creates))
	rest := make([]string, 0, len(b.Expect))
	for k := range b.Expect {
		if b.Creates[k] {
			created = append(created, k)
		} else {
			rest = append(rest, k)
		}
	}
	sort.Strings(created)
	sort.Strings(rest)
	return append(created, rest...)
}

// ExpectsAbsent reports whether the invocation saw the key as missing.
func (b *Batch) ExpectsAbsent(key string) bool {
	v, ok := b.Expect[key]
	return ok && v == nil
}

// Check compares the current value of a key with what the invocation read.
// current must be nil when the key does not exist.
func (b *Batch) Check(key string, current []byte) error {
	expected := b.Expect[key]
	if expected == nil {
		if current != nil {
			return b.ExistsError(key)
		}
		return nil
	}
	if current == nil || !bytes.Equal(expected, current) {
		return fmt.Errorf("%w: %s", ErrConflict, key)
	}
	return nil
}

// ExistsError is the error for a key that was absent when read but exists
// now. Only keys the invocation created report ErrKeyExists.
func (b *Batch) ExistsError(key string) error {
	if b.Creates[key] {
		return fmt.Errorf("%w: %s", ErrKeyExists, key)
	}
	return fmt.Errorf("%w: %s", ErrConflict, key)
}
