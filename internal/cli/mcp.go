package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/internal/mcpserver"
)

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the case studies to MCP clients",
		Long: `Serve the case studies to MCP clients.

By default the server speaks MCP over stdin and stdout, which is what desktop
assistants expect when they launch a tool. With --http it serves the
streamable HTTP transport at ` + mcpserver.EndpointPath + ` instead.

Tools: list_case_studies, get_case_study, get_layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMCP(cmd.Context(), httpAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address (e.g. :8090)")

	return cmd
}

func (c *CLI) runMCP(ctx context.Context, httpAddr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	srv, release, err := c.newSite(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer release()

	s := mcpserver.NewServer(srv)
	if httpAddr != "" {
		c.Logger.Info("serving MCP", "addr", httpAddr, "path", mcpserver.EndpointPath)
		return mcpserver.ServeHTTP(ctx, s, httpAddr)
	}
	c.Logger.Debug("serving MCP on stdio")
	return mcpserver.ServeStdio(ctx, s, os.Stdin, os.Stdout)
}
