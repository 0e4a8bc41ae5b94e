package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string
	Dir     string
	Redis   RedisConfig
}

// Open builds the cache named by opts.Backend. An empty backend is "none".
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	}
	return nil, fmt.Errorf("%w: %q (must be one of: none, file, redis)", ErrUnknownBackend, opts.Backend)
}

// NullCache misses on every Get and drops every Set. It backs the "none"
// backend and sites built without a cache.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
