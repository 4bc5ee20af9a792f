package cache

import (
	"context"
	"errors"
)

// Common errors returned by cache operations.
var (
	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")
)

// Stats holds the observability counters a cache maintains. Counters are
// plain state for reporting; they play no part in correctness.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Cache is a bounded map from content hash to a computed artifact.
//
// Implementations must be safe for concurrent use: the get/put/evict sequence
// is atomic, concurrent Puts for the same key are idempotent (last write
// wins), and a reader never observes a partially evicted state.
type Cache interface {
	// Get returns the artifact stored under key, reporting whether it was
	// present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores an artifact under key, evicting if the cache is over
	// capacity. Storing an existing key overwrites its value.
	Put(ctx context.Context, key string, value []byte) error

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Stats returns a snapshot of the hit/miss/eviction counters.
	Stats() Stats

	// Close releases any resources held by the cache. A closed cache
	// returns ErrClosed from all other operations.
	Close() error
}
