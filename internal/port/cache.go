package port

import (
	"context"
	"time"
)

// Cache is a shared key-value store with per-entry expiry. Implementations
// return domain.ErrCacheMiss when a key is absent or expired; any other
// error means the store itself misbehaved.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}
