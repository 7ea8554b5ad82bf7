// Package store persists saved layouts.
//
// A [Store] is a small byte-oriented key/value interface with optional TTL.
// Several backends implement it:
//   - [NullStore]: stores nothing, for disabled persistence
//   - [MemoryStore]: process-local map, for tests and the HTTP server default
//   - [FileStore]: JSON files under a directory, for the CLI
//   - [RedisStore]: shared storage for multi-instance servers
//   - [MongoStore]: document storage with a TTL index
//
// [Layouts] sits on top of a Store and speaks in layout roots instead of bytes:
//
//	layouts := store.NewLayouts(store.NewMemoryStore())
//	etag, err := layouts.Save(ctx, "editor", root)
//	root, etag, err = layouts.Load(ctx, "editor")
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")

	// ErrNetwork marks connection failures and timeouts talking to a backend.
	ErrNetwork = errors.New("network error")
)

// Store is the interface for layout storage backends.
type Store interface {
	// Get returns the value stored under key. A missing or expired key is
	// reported as a miss (nil, false, nil), never as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl keeps the value until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the live keys starting with prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Backend names the implementation for logs and hooks.
	Backend() string

	// Close releases the backend's resources.
	Close() error
}

// expiry converts a ttl into an absolute deadline. Zero means never.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(deadline, now time.Time) bool {
	return !deadline.IsZero() && now.After(deadline)
}
