package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/site"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Long: `Serve the portfolio over HTTP.

The desktop is served at /, case studies at /case/<slug> and their markdown
export at /case/<slug>/markdown. /api/layout returns tile placements for a
viewport given as ?w=&h=, which the desktop page refetches after a resize.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv, release, err := c.newSite(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer release()

	return srv.ListenAndServe(ctx, site.ServeOptions{
		Addr:              addr,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		OnListen: func(bound string) {
			printSuccess("Serving on %s", StyleLink.Render("http://"+bound))
			printDetail("Cache: %s, TTL %s", cfg.Cache.Backend, cfg.Cache.TTL.Round(time.Second))
		},
	})
}
