package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// EnvPrefix starts every environment variable read by ApplyEnv.
const EnvPrefix = "DESKFOLIO_"

type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

func str(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func duration(dst func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst(c) = d
		return nil
	}
}

func integer(dst func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

var envBindings = []envBinding{
	{"SITE_NAME", str(func(c *Config) *string { return &c.Site.Name })},
	{"SITE_TITLE", str(func(c *Config) *string { return &c.Site.Title })},
	{"SITE_EMAIL", str(func(c *Config) *string { return &c.Site.Email })},
	{"CONTENT_DIR", str(func(c *Config) *string { return &c.Content.Dir })},
	{"MONGO_URI", str(func(c *Config) *string { return &c.Content.Mongo.URI })},
	{"MONGO_DATABASE", str(func(c *Config) *string { return &c.Content.Mongo.Database })},
	{"MONGO_COLLECTION", str(func(c *Config) *string { return &c.Content.Mongo.Collection })},
	{"CATALOG", str(func(c *Config) *string { return &c.Catalog.File })},
	{"ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"CACHE", str(func(c *Config) *string { return &c.Cache.Backend })},
	{"CACHE_DIR", str(func(c *Config) *string { return &c.Cache.Dir })},
	{"CACHE_PREFIX", str(func(c *Config) *string { return &c.Cache.Prefix })},
	{"CACHE_TTL", duration(func(c *Config) *time.Duration { return &c.Cache.TTL })},
	{"REDIS_ADDR", str(func(c *Config) *string { return &c.Cache.RedisAddr })},
	{"REDIS_PASSWORD", str(func(c *Config) *string { return &c.Cache.RedisPassword })},
	{"REDIS_DB", integer(func(c *Config) *int { return &c.Cache.RedisDB })},
	{"LAYOUT_MODE", str(func(c *Config) *string { return &c.Layout.Mode })},
	{"POINTER", str(func(c *Config) *string { return &c.Layout.Pointer })},
}

// EnvNames lists the environment variables ApplyEnv reads.
func EnvNames() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

// ApplyEnv overrides fields from DESKFOLIO_* variables found by lookup.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok || v == "" {
			continue
		}
		if err := b.set(c, v); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, b.name)
		}
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "load %s", p)
		}
	}
	return nil
}
