package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed cache with per-entry TTLs. The registry uses it
// for read-side queries only; balance-requirement lookups always go to the
// rent oracle directly and must never pass through a cache.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
