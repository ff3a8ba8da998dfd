// Package cache stores fetched graph payloads between runs.
//
// # Backends
//
//   - [FileCache]: JSON entry files under the user cache directory
//   - [RedisCache]: a shared Redis instance, for several viewers pointed at
//     the same graph server
//   - [NullCache]: stores nothing (caching disabled)
//
// All backends implement [Cache]. Entries carry a TTL; a TTL of zero
// means the entry never expires.
//
// # Keys
//
// Keys are plain strings. [GraphKey] derives the key for a graph fetched
// from a server, and [Namespace] prefixes every key of an inner cache so
// several tools can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (ok false), not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key for ttl. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
