// Package memcache provides an in-process cache used for derived data such
// as computed statistics. It wraps github.com/patrickmn/go-cache.
package memcache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Config holds cache settings.
type Config struct {
	// DefaultExpiration is the TTL applied to entries set without an
	// explicit duration.
	DefaultExpiration time.Duration

	// CleanupInterval is how often expired entries are purged.
	CleanupInterval time.Duration
}

// Cache is a small typed wrapper over go-cache. Values are stored as-is;
// this is an in-process cache, not a serialization boundary.
type Cache struct {
	backend *gocache.Cache
}

// NewCache creates a Cache from the given config.
func NewCache(cfg Config) (*Cache, error) {
	if cfg.DefaultExpiration <= 0 {
		return nil, fmt.Errorf("memcache: default expiration must be positive, got %s", cfg.DefaultExpiration)
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 2 * cfg.DefaultExpiration
	}

	return &Cache{
		backend: gocache.New(cfg.DefaultExpiration, cfg.CleanupInterval),
	}, nil
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(ctx context.Context, key string) (any, bool) {
	return c.backend.Get(key)
}

// Set stores value under key with the default expiration.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.backend.SetDefault(key, value)
}

// Delete removes key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) {
	c.backend.Delete(key)
}
