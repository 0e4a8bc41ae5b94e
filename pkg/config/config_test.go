package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/geometry"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, DefaultContentDir, c.Content.Dir)
	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, cache.BackendNone, c.Cache.Backend)
	assert.Equal(t, DefaultCacheTTL, c.Cache.TTL)
	assert.Equal(t, "scatter", c.Layout.Mode)
	assert.Equal(t, "fine", c.Layout.Pointer)
	assert.Equal(t, geometry.Viewport{Width: 1440, Height: 900}, c.Viewport())
	assert.False(t, c.UsesMongo())
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
[site]
name = "JACK PARRISH"
email = "hello@example.com"
social = [{ label = "LinkedIn", href = "https://linkedin.com" }]

[content]
dir = "cases"

[content.mongo]
uri = "mongodb://localhost:27017"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"

[layout]
mode = "anchors"
pointer = "coarse"
`))
	require.NoError(t, err)

	assert.Equal(t, "JACK PARRISH", c.Site.Name)
	require.Len(t, c.Site.Social, 1)
	assert.Equal(t, "LinkedIn", c.PageSite().Social[0].Label)
	assert.Equal(t, "cases", c.Content.Dir)
	assert.True(t, c.UsesMongo())
	assert.Equal(t, DefaultMongoDatabase, c.MongoSource().Database)
	assert.Equal(t, time.Hour, c.Cache.TTL)
	assert.Equal(t, geometry.Anchors, c.LayoutOptions().Mode)

	opts := c.CacheOptions("/tmp/x")
	assert.Equal(t, cache.BackendRedis, opts.Backend)
	assert.Equal(t, "localhost:6379", opts.Redis.Addr)
	assert.Equal(t, "/tmp/x", opts.Dir)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[site`},
		{"unknown key", "[site]\ncolour = \"red\""},
		{"bad email", "[site]\nemail = \"not an email\""},
		{"bad social", "[site]\nsocial = [{ label = \"x\", href = \"ftp://x\" }]"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad mode", "[layout]\nmode = \"grid\""},
		{"bad pointer", "[layout]\npointer = \"pen\""},
		{"negative viewport", "[layout]\nwidth = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidConfig), "%v", err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DESKFOLIO_SITE_NAME":   "Env Name",
		"DESKFOLIO_CACHE":       "file",
		"DESKFOLIO_CACHE_TTL":   "90s",
		"DESKFOLIO_REDIS_DB":    "3",
		"DESKFOLIO_LAYOUT_MODE": "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c := &Config{Layout: LayoutConfig{Mode: "anchors"}}
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, "Env Name", c.Site.Name)
	assert.Equal(t, "file", c.Cache.Backend)
	assert.Equal(t, 90*time.Second, c.Cache.TTL)
	assert.Equal(t, 3, c.Cache.RedisDB)
	assert.Equal(t, "anchors", c.Layout.Mode, "empty values are ignored")

	env["DESKFOLIO_REDIS_DB"] = "three"
	err := (&Config{}).ApplyEnv(lookup)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidConfig))
}

func TestEnvNames(t *testing.T) {
	names := EnvNames()
	assert.Contains(t, names, "DESKFOLIO_MONGO_URI")
	assert.Contains(t, names, "DESKFOLIO_ADDR")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644))

	t.Setenv("DESKFOLIO_SITE_TITLE", "From env")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, "From env", c.Site.Title)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidConfig))

	t.Chdir(t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, c.Server.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DESKFOLIO_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DESKFOLIO_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("DESKFOLIO_TEST_DOTENV"))
}

func TestCacheKeyer(t *testing.T) {
	c := Default()
	assert.Equal(t, "page:html:atlas:abc", c.CacheKeyer().PageKey("atlas", "abc", "html"))

	c.Cache.Prefix = "deskfolio:jack:"
	assert.Equal(t, "deskfolio:jack:page:html:atlas:abc", c.CacheKeyer().PageKey("atlas", "abc", "html"))

	require.NoError(t, c.ApplyEnv(func(name string) (string, bool) {
		if name == "DESKFOLIO_CACHE_PREFIX" {
			return "other:", true
		}
		return "", false
	}))
	assert.Equal(t, "other:", c.Cache.Prefix)
}
