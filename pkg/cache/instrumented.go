package cache

import (
	"context"
	"time"

	"github.com/jackparrish/deskfolio/pkg/observability"
)

// Instrumented reports hits, misses and writes of c to the registered
// observability cache hooks, tagged with keyType.
func Instrumented(c Cache, keyType string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &instrumented{Cache: c, keyType: keyType}
}

type instrumented struct {
	Cache
	keyType string
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}
