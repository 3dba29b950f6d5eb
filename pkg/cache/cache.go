// Package cache provides result memoization for the planarity pipeline.
//
// A [Cache] stores opaque byte values under string keys with optional
// expiry. Backends: [FileCache] for CLI runs, [RedisCache] for the server,
// and [NullCache] to disable caching. A [Keyer] derives stable cache keys
// from graph content, so identical graphs hit the same entry regardless of
// where they came from.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
//
// Get reports a miss with hit=false and a nil error; errors are reserved for
// backend failures. A zero TTL on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
