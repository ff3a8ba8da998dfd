package cache

import (
	"context"
	"time"
)

// Namespaced prefixes every key of an inner cache. Closing it closes the
// inner cache.
//
// Example usage:
//
//	shared, _ := cache.NewRedisCache(ctx, addr, "", 0)
//	viewer := cache.Namespace(shared, "spiderweb:")
type Namespaced struct {
	inner  Cache
	prefix string
}

// Namespace wraps inner so that all keys get prefix. A nil inner yields
// a NullCache.
func Namespace(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Namespaced{inner: inner, prefix: prefix}
}

// Get implements Cache.
func (c *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set implements Cache.
func (c *Namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete implements Cache.
func (c *Namespaced) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close implements Cache.
func (c *Namespaced) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Namespaced)(nil)
