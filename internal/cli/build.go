package cli

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/cache"
)

// buildCommand creates the build command for static exports.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Pre-render the portfolio as static files",
		Long: `Pre-render the portfolio as static files.

Every page the server would answer is written under the output directory:
the desktop, the about page, each case study with its markdown export, the
JSON APIs for the default viewport, and the static assets. Case studies that
cannot be parsed are written as their unavailable page and reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dist", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	srv, release, err := c.newSite(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer release()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Building site...")
	spinner.Start()

	report, err := srv.Build(ctx, output)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("build %s: %w", output, err)
	}
	spinner.Stop()
	cases := countCasePages(report.Files)
	prog.done("Build complete", "files", len(report.Files), "cases", cases, "unavailable", len(report.Unavailable))

	printSuccess("Built %d files", len(report.Files))
	printStats(len(report.Files), cases, !noCache && cfg.Cache.Backend != cache.BackendNone)
	printFile(output)
	for _, slug := range report.Unavailable {
		printWarning("Case study %q could not be parsed", slug)
	}
	printNewline()
	printNextStep("Check the case studies", appName+" cases check")

	return nil
}

// countCasePages counts the case study pages in a build's file list.
func countCasePages(files []string) int {
	n := 0
	for _, f := range files {
		if strings.HasPrefix(f, "case/") && path.Base(f) == "index.html" {
			n++
		}
	}
	return n
}
