// Package store persists per-session snapshots of the user's collections.
//
// Each (session, collection) pair maps to one key holding the whole
// collection as a JSON array. Every mutation rewrites the full array;
// there are no partial writes, and concurrent writers race with last
// writer wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when a stored blob is not valid JSON for
// its collection. The blob is left in place for inspection.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Backend is a string-keyed blob store.
type Backend interface {
	// Load returns the blob stored under key. ok is false when the key is absent.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// Collection is an ordered list of records persisted as one snapshot.
type Collection[T any] struct {
	backend Backend
	name    string
	seed    func() []T
}

// NewCollection binds a collection name to a backend. When seed is non-nil
// the first read of an absent snapshot stores and returns the seed records.
func NewCollection[T any](backend Backend, name string, seed func() []T) *Collection[T] {
	return &Collection[T]{backend: backend, name: name, seed: seed}
}

// Name is the unscoped collection key, e.g. "helper-alerts".
func (c *Collection[T]) Name() string { return c.name }

// GetAll returns the session's records in stored order. An absent snapshot
// yields an empty list (or the seed); a malformed one yields an error
// wrapping ErrCorruptSnapshot.
func (c *Collection[T]) GetAll(ctx context.Context, session string) ([]T, error) {
	key := ScopedKey(session, c.name)
	data, ok, err := c.backend.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return c.hydrate(ctx, session)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) hydrate(ctx context.Context, session string) ([]T, error) {
	if c.seed == nil {
		return []T{}, nil
	}
	records := c.seed()
	if err := c.SaveAll(ctx, session, records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveAll overwrites the session's snapshot with records.
func (c *Collection[T]) SaveAll(ctx context.Context, session string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	key := ScopedKey(session, c.name)
	if err := c.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Document is a single value persisted under one key, such as the profile.
type Document[T any] struct {
	backend Backend
	name    string
}

// NewDocument binds a singleton key to a backend.
func NewDocument[T any](backend Backend, name string) *Document[T] {
	return &Document[T]{backend: backend, name: name}
}

// Name is the unscoped document key.
func (d *Document[T]) Name() string { return d.name }

// Get returns the stored value, or the zero value when absent.
func (d *Document[T]) Get(ctx context.Context, session string) (T, error) {
	var v T
	key := ScopedKey(session, d.name)
	data, ok, err := d.backend.Load(ctx, key)
	if err != nil {
		return v, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, key, err)
	}
	return v, nil
}

// Save overwrites the stored value.
func (d *Document[T]) Save(ctx context.Context, session string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.name, err)
	}
	key := ScopedKey(session, d.name)
	if err := d.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
