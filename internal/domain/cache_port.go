package domain

import (
	"context"
	"time"
)

// CacheStore is the key-value capability behind the price cache.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error) // ErrCacheMiss when absent or expired
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Clear(ctx context.Context) error
}
