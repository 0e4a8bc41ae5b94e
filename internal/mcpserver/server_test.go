package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/site"
	"github.com/jackparrish/deskfolio/pkg/workspace"
)

const atlas = `---
title: Atlas
role: Designer
---

<Section title="Process">
Mapped the **whole** thing.
</Section>
`

func testSite() *site.Server {
	fsys := fstest.MapFS{
		"atlas.mdx":  {Data: []byte(atlas)},
		"broken.mdx": {Data: []byte("---\ntitle: [oops\n---\n")},
	}
	return site.New(site.Options{Repo: content.NewRepository(content.NewFSSource(fsys, "test"), nil)})
}

func call[T any](t *testing.T, h func(context.Context, mcp.CallToolRequest, T) (*mcp.CallToolResult, error), args T) (string, bool) {
	t.Helper()
	res, err := h(context.Background(), mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestListCaseStudies(t *testing.T) {
	out, isErr := call(t, listHandler(testSite()), emptyRequest{})
	require.False(t, isErr, out)

	var cases []site.CaseSummary
	require.NoError(t, json.Unmarshal([]byte(out), &cases))
	require.Len(t, cases, 1)
	assert.Equal(t, "atlas", cases[0].Slug)
	assert.Equal(t, "Designer", cases[0].Role)
}

func TestGetCaseStudy(t *testing.T) {
	h := getHandler(testSite())

	out, isErr := call(t, h, GetCaseStudyRequest{Slug: "atlas"})
	require.False(t, isErr, out)
	var resp GetCaseStudyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "markdown", resp.Format)
	assert.Equal(t, "Atlas", resp.Summary.Title)
	assert.Contains(t, resp.Content, "# Atlas")
	assert.Contains(t, resp.Content, "**whole**")

	out, isErr = call(t, h, GetCaseStudyRequest{Slug: "atlas", Format: "text"})
	require.False(t, isErr, out)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Contains(t, resp.Content, "Mapped the whole thing.")
	assert.NotContains(t, resp.Content, "<")
}

func TestGetCaseStudyErrors(t *testing.T) {
	h := getHandler(testSite())

	tests := []struct {
		name string
		args GetCaseStudyRequest
		want string
	}{
		{"missing slug", GetCaseStudyRequest{}, "slug is required"},
		{"unknown slug", GetCaseStudyRequest{Slug: "seenit"}, `no case study "seenit"`},
		{"malformed", GetCaseStudyRequest{Slug: "broken"}, "unavailable"},
		{"bad format", GetCaseStudyRequest{Slug: "atlas", Format: "pdf"}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, h, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGetLayout(t *testing.T) {
	h := layoutHandler(testSite())

	out, isErr := call(t, h, GetLayoutRequest{Width: 390, Height: 844, Mode: "anchors"})
	require.False(t, isErr, out)
	var view workspace.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "mobile", view.Breakpoint)
	assert.Equal(t, "anchors", view.Mode)
	assert.NotEmpty(t, view.Tiles)

	out, isErr = call(t, h, GetLayoutRequest{Mode: "grid"})
	assert.True(t, isErr)
	assert.Contains(t, out, "invalid layout mode")
}

func TestToolsAreRegistered(t *testing.T) {
	s := NewServer(testSite())

	msg := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	resp, ok := msg.(mcp.JSONRPCResponse)
	require.True(t, ok, "unexpected response %T", msg)
	result, ok := resp.Result.(mcp.ListToolsResult)
	require.True(t, ok, "unexpected result %T", resp.Result)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_case_studies", "get_case_study", "get_layout"}, names)
}
