package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It stands in for the query cache under
// --no-cache, when the cache is disabled in the config, and when the cache
// directory cannot be created.
type NullCache struct{}

// NewNullCache returns a disabled query cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses, so every query is computed from the snapshot.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear reports zero entries removed.
func (c *NullCache) Clear(ctx context.Context) (int, error) {
	return 0, nil
}

func (c *NullCache) Close() error {
	return nil
}

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
