// Package config loads deskfolio settings.
//
// Settings come from three places, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, deskfolio.toml unless another path is given
//  3. DESKFOLIO_* environment variables, optionally read from a .env file
//
// A minimal file:
//
//	[site]
//	name = "JACK PARRISH"
//	email = "hello@example.com"
//
//	[content]
//	dir = "content/case-studies"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/follower"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/render/page"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "deskfolio.toml"

// Default values.
const (
	DefaultContentDir      = "content"
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMongoDatabase   = "deskfolio"
	DefaultMongoCollection = "case_studies"
	DefaultCacheTTL        = 24 * time.Hour
	DefaultViewportWidth   = 1440
	DefaultViewportHeight  = 900
)

// Config is the complete configuration.
type Config struct {
	Site    SiteConfig    `toml:"site"`
	Content ContentConfig `toml:"content"`
	Catalog CatalogConfig `toml:"catalog"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Layout  LayoutConfig  `toml:"layout"`
}

// SiteConfig holds values shown on every page.
type SiteConfig struct {
	Name   string      `toml:"name"`
	Title  string      `toml:"title"`
	Email  string      `toml:"email"`
	About  string      `toml:"about"`
	Note   string      `toml:"note"`
	Social []page.Link `toml:"social"`
}

// ContentConfig selects where case studies are read from. A Mongo URI
// takes precedence over Dir.
type ContentConfig struct {
	Dir   string      `toml:"dir"`
	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig locates the case-study collection.
type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

// CatalogConfig points at a tile catalog file. Empty means the built-in
// catalog.
type CatalogConfig struct {
	File string `toml:"file"`
}

// ServerConfig configures the HTTP site.
type ServerConfig struct {
	Addr              string        `toml:"addr"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`
}

// CacheConfig selects the rendered-page cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`

	// Prefix is prepended to every key, so several sites can share one
	// Redis database.
	Prefix string `toml:"prefix"`
}

// LayoutConfig tunes the desktop.
type LayoutConfig struct {
	Mode    string `toml:"mode"`
	Pointer string `toml:"pointer"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Content.Mongo.Database == "" {
		c.Content.Mongo.Database = DefaultMongoDatabase
	}
	if c.Content.Mongo.Collection == "" {
		c.Content.Mongo.Collection = DefaultMongoCollection
	}
	if c.Content.Mongo.Timeout == 0 {
		c.Content.Mongo.Timeout = 10 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendNone
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Layout.Mode == "" {
		c.Layout.Mode = geometry.Scatter.String()
	}
	if c.Layout.Pointer == "" {
		c.Layout.Pointer = follower.Fine.String()
	}
	if c.Layout.Width == 0 {
		c.Layout.Width = DefaultViewportWidth
	}
	if c.Layout.Height == 0 {
		c.Layout.Height = DefaultViewportHeight
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Site.Email != "" {
		if err := perrors.ValidateEmail(c.Site.Email); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "site.email")
		}
	}
	for _, l := range c.Site.Social {
		if err := perrors.ValidateURL(l.Href); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "site.social %q", l.Label)
		}
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.backend %q must be one of: none, file, redis", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if _, err := geometry.ParseMode(c.Layout.Mode); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "layout.mode")
	}
	switch c.Layout.Pointer {
	case follower.Fine.String(), follower.Coarse.String():
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "layout.pointer %q must be fine or coarse", c.Layout.Pointer)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "layout viewport must be positive, got %dx%d", c.Layout.Width, c.Layout.Height)
	}
	return nil
}

// Load reads path, applies the environment, then defaults, and validates.
// An empty path reads DefaultFile if it exists.
func Load(path string) (*Config, error) {
	c := &Config{}
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := c.decode(data); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config")
	}

	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes TOML data on top of an empty configuration, then applies
// defaults and validates. The environment is not consulted.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := c.decode(data); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse config")
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown key %q", keys[0].String())
	}
	return nil
}

// UsesMongo reports whether case studies come from MongoDB.
func (c *Config) UsesMongo() bool { return c.Content.Mongo.URI != "" }

// MongoSource returns the content package's view of the Mongo settings.
func (c *Config) MongoSource() content.MongoConfig {
	m := c.Content.Mongo
	return content.MongoConfig{URI: m.URI, Database: m.Database, Collection: m.Collection, Timeout: m.Timeout}
}

// CacheOptions returns the options for cache.Open. dir is used when the
// file backend has no directory configured.
func (c *Config) CacheOptions(dir string) cache.Options {
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}

// CacheKeyer returns the key scheme for the configured prefix.
func (c *Config) CacheKeyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// LayoutOptions returns the geometry options for the configured mode.
func (c *Config) LayoutOptions() geometry.Options {
	mode, _ := geometry.ParseMode(c.Layout.Mode)
	return geometry.Options{Mode: mode}
}

// Viewport returns the configured default viewport.
func (c *Config) Viewport() geometry.Viewport {
	return geometry.Viewport{Width: float64(c.Layout.Width), Height: float64(c.Layout.Height)}
}

// PageSite returns the values shared by every page.
func (c *Config) PageSite() page.Site {
	return page.Site{
		Name:   c.Site.Name,
		Title:  c.Site.Title,
		Email:  c.Site.Email,
		About:  c.Site.About,
		Note:   c.Site.Note,
		Social: c.Site.Social,
	}
}
