// Package cli implements the deskfolio command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/buildinfo"
	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/config"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/render"
	"github.com/jackparrish/deskfolio/pkg/site"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "deskfolio"

	// mediaDir is the directory under the content directory served as /static/.
	mediaDir = "static"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFiles   []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Deskfolio serves a portfolio as a desktop of draggable tiles",
		Long:         `Deskfolio serves a design portfolio as a desktop of floating, draggable tiles that open long-form case studies written in MDX.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", []string{".env"}, "dotenv files loaded before the environment is read")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.casesCommand())
	root.AddCommand(c.deskCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads the dotenv files and the config file.
func (c *CLI) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(c.envFiles...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "content", cfg.Content.Dir, "mongo", cfg.UsesMongo(), "cache", cfg.Cache.Backend)
	return cfg, nil
}

// openRepository opens the configured case study source. The returned
// function releases it.
func openRepository(ctx context.Context, cfg *config.Config) (*content.Repository, func(), error) {
	logger := loggerFromContext(ctx)
	if cfg.UsesMongo() {
		src, err := content.NewMongoSource(ctx, cfg.MongoSource())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		closeFn := func() {
			if err := src.Close(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("mongo disconnect failed", "err", err)
			}
		}
		return content.NewRepository(src, logger), closeFn, nil
	}
	return content.NewRepository(content.NewDirSource(cfg.Content.Dir), logger), func() {}, nil
}

// openCache opens the configured page cache, or a null cache when noCache
// is set.
func openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), appName)
	}
	return cache.Open(ctx, cfg.CacheOptions(dir))
}

// loadCatalog returns the configured tile catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog.File)
}

// mediaFS returns the content directory's static folder, if there is one.
func mediaFS(cfg *config.Config) fs.FS {
	dir := filepath.Join(cfg.Content.Dir, mediaDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}

// newSite wires the configured source, cache and catalog into a site
// server. The returned function releases them.
func (c *CLI) newSite(ctx context.Context, cfg *config.Config, noCache bool) (*site.Server, func(), error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	pages, err := openCache(ctx, cfg, noCache)
	if err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	srv := site.New(site.Options{
		Site:     cfg.PageSite(),
		Catalog:  cat,
		Repo:     repo,
		Engine:   render.New(render.WithLogger(c.Logger)),
		Cache:    pages,
		Keyer:    cfg.CacheKeyer(),
		TTL:      cfg.Cache.TTL,
		Layout:   cfg.LayoutOptions(),
		Viewport: cfg.Viewport(),
		Media:    mediaFS(cfg),
		Logger:   c.Logger,
	})
	release := func() {
		if err := pages.Close(); err != nil {
			c.Logger.Warn("cache close failed", "err", err)
		}
		closeRepo()
	}
	return srv, release, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/deskfolio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, ".cache", appName), nil
}
