// Package cache keeps in-flight edit snapshots for one browsing session.
//
// A cache is memoization only: pages never read another page's entries and
// list views never consult it. Entries are addressed by (kind, key) and hold
// JSON-encoded snapshots, so a stored value never aliases live session memory.
//
// Two implementations exist: Memory (default, per process) and the SQLite
// store, whose scoped views survive console restarts.
package cache

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var ErrEmptyScope = errors.New("cache scope must not be empty")

// Cache stores snapshots keyed by entity kind and key.
type Cache interface {
	Get(ctx context.Context, kind, key string) ([]byte, bool, error)
	Put(ctx context.Context, kind, key string, data []byte) error
	Clear(ctx context.Context, kind, key string) error
}

// EntryKey is the textual address of a (kind, key) pair, e.g. "food.edit/mms".
func EntryKey(kind, key string) string {
	return kind + ".edit/" + key
}

// Load decodes the snapshot stored under (kind, key).
func Load[T any](ctx context.Context, c Cache, kind, key string) (T, bool, error) {
	var v T
	data, ok, err := c.Get(ctx, kind, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("decode snapshot %s: %w", EntryKey(kind, key), err)
	}
	return v, true, nil
}

// Store encodes v and stores it under (kind, key).
func Store[T any](ctx context.Context, c Cache, kind, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", EntryKey(kind, key), err)
	}
	return c.Put(ctx, kind, key, data)
}
