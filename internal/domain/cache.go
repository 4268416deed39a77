package domain

import (
	"context"
	"time"
)

type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned by Cache.Get for absent or expired keys.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value store holding anonymous graded results.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites key. A zero ttl keeps it until deleted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the store is reachable; used by the health check.
	Ping(ctx context.Context) error
}
