// Package cache stores the results of read-only graph queries.
//
// Keys are content addressed: [Keyer.QueryKey] mixes the hash of the
// snapshot a query ran against into every key. A mutation that is saved
// changes the snapshot, so later queries compute different keys and never
// see results from before the change. Entries for old snapshots are simply
// never read again and age out through their TTL.
//
// # Backends
//
//   - [NullCache]: caches nothing; used when caching is disabled
//   - [FileCache]: one JSON file per entry under a cache directory
//   - [RedisCache]: Redis strings with native expiry, under a key prefix
//
// # Retries
//
// [Retryable] and [RetryWithBackoff] are shared with the network-backed
// stores for connection checks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value cache with per-entry TTL.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
