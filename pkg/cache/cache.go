// Package cache provides byte-oriented caches for rendered pages and layouts.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries sharded under a directory, for `deskfolio serve` on one host
//   - [RedisCache]: shared entries for multi-instance deployments
//
// Keys are produced by a [Keyer] so that every backend agrees on naming.
// Rendered case studies are keyed on the document's content hash, which makes
// invalidation implicit: an edited document simply hashes to a new key.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional TTL.
type Cache interface {
	// Get returns the value for key. The bool reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
