package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/langmarket/api/utils/cache"
)

// Cache is the subset of cache operations the read services need.
// *cache.RedisCache satisfies it; tests substitute an in-memory fake.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// cacheGet attempts a cache read. Returns true on a hit. A miss or a cache
// failure both report false; failures are logged and the caller falls back
// to the store, so an unavailable cache never fails a request.
func cacheGet(ctx context.Context, c Cache, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	err := c.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrNotFound) {
		log.Printf("cache read failed for %s: %v", key, err)
	}
	return false
}

// cacheSet populates a cache entry. Best-effort: a failure is logged and the
// store result is still served.
func cacheSet(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.SetJSON(ctx, key, value, ttl); err != nil {
		log.Printf("cache write failed for %s: %v", key, err)
	}
}

// cacheInvalidate removes exact keys and every key matching the given
// patterns. Best-effort and idempotent: a failure is logged, never fatal,
// and staleness stays bounded by the entry TTLs.
func cacheInvalidate(ctx context.Context, c Cache, keys []string, patterns ...string) {
	if c == nil {
		return
	}
	for _, pattern := range patterns {
		matched, err := c.Keys(ctx, pattern)
		if err != nil {
			log.Printf("cache invalidation scan failed for %s: %v", pattern, err)
			continue
		}
		keys = append(keys, matched...)
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}
