// Package mcpserver exposes the portfolio to MCP clients so assistants can
// list and read case studies and inspect the desktop layout.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jackparrish/deskfolio/pkg/buildinfo"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/site"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Name is reported to clients during initialization.
const Name = "deskfolio"

// EndpointPath is where the streamable HTTP transport listens.
const EndpointPath = "/mcp"

type GetCaseStudyRequest struct {
	Slug   string `json:"slug"`   // Case study slug, e.g. "atlas"
	Format string `json:"format"` // "markdown" (default) or "text"
}

type GetCaseStudyResponse struct {
	Summary site.CaseSummary `json:"summary"`
	Format  string           `json:"format"`
	Content string           `json:"content"`
}

type GetLayoutRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

type emptyRequest struct{}

// NewServer registers the portfolio tools on a new MCP server.
func NewServer(srv *site.Server) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		buildinfo.Get().Version,
		server.WithToolCapabilities(false),
	)

	listTool := mcp.NewTool("list_case_studies",
		mcp.WithDescription("List the published case studies with their titles and roles"),
	)
	s.AddTool(listTool, mcp.NewTypedToolHandler(listHandler(srv)))

	getTool := mcp.NewTool("get_case_study",
		mcp.WithDescription("Get one case study as markdown or plain text"),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("The case study slug as returned by list_case_studies"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("markdown", "text"),
		),
	)
	s.AddTool(getTool, mcp.NewTypedToolHandler(getHandler(srv)))

	layoutTool := mcp.NewTool("get_layout",
		mcp.WithDescription("Compute the desktop tile placements for a viewport"),
		mcp.WithNumber("width", mcp.Description("Viewport width in pixels")),
		mcp.WithNumber("height", mcp.Description("Viewport height in pixels")),
		mcp.WithString("mode",
			mcp.Description("Placement mode"),
			mcp.Enum("scatter", "anchors"),
		),
	)
	s.AddTool(layoutTool, mcp.NewTypedToolHandler(layoutHandler(srv)))

	return s
}

func listHandler(srv *site.Server) func(context.Context, mcp.CallToolRequest, emptyRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, _ emptyRequest) (*mcp.CallToolResult, error) {
		cases, err := srv.Cases(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list case studies: %v", err)), nil
		}
		return jsonResult(cases)
	}
}

func getHandler(srv *site.Server) func(context.Context, mcp.CallToolRequest, GetCaseStudyRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args GetCaseStudyRequest) (*mcp.CallToolResult, error) {
		if args.Slug == "" {
			return mcp.NewToolResultError("slug is required"), nil
		}
		if args.Format == "" {
			args.Format = "markdown"
		}

		var (
			body string
			err  error
		)
		switch args.Format {
		case "markdown":
			var md []byte
			md, err = srv.CaseMarkdown(ctx, args.Slug)
			body = string(md)
		case "text":
			body, err = srv.CaseText(ctx, args.Slug)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (must be markdown or text)", args.Format)), nil
		}
		if perrors.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no case study %q", args.Slug)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("case study %q is unavailable: %s", args.Slug, perrors.UserMessage(err))), nil
		}

		summary, err := srv.Summary(ctx, args.Slug)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(GetCaseStudyResponse{Summary: summary, Format: args.Format, Content: body})
	}
}

func layoutHandler(srv *site.Server) func(context.Context, mcp.CallToolRequest, GetLayoutRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args GetLayoutRequest) (*mcp.CallToolResult, error) {
		vp := srv.Viewport()
		if args.Width > 0 {
			vp.Width = float64(args.Width)
		}
		if args.Height > 0 {
			vp.Height = float64(args.Height)
		}
		opts := srv.LayoutOptions()
		if args.Mode != "" {
			mode, err := geometry.ParseMode(args.Mode)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			opts.Mode = mode
		}
		return jsonResult(srv.Layout(vp, opts))
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ServeStdio serves s over stdin and stdout until ctx is canceled or the
// client disconnects.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

// ServeHTTP serves s over streamable HTTP on addr until ctx is canceled.
func ServeHTTP(ctx context.Context, s *server.MCPServer, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s, server.WithEndpointPath(EndpointPath))

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Start(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return httpServer.Shutdown(context.WithoutCancel(ctx))
	}
}
