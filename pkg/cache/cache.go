package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service is a key/value store with per-key expiry. Values are opaque bytes;
// callers own their encoding.
type Service interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	// Expire resets the TTL of key and reports whether the key existed.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Close() error
}
