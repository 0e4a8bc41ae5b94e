package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/workspace"
)

func TestRootCommand(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, LogInfo).RootCommand()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	for _, w := range []string{"build", "cache", "cases", "completion", "desk", "layout", "mcp", "serve"} {
		if !names[w] {
			t.Errorf("missing subcommand %q", w)
		}
	}

	for _, flag := range []string{"config", "env-file"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug output at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug output missing after SetLogLevel(LogDebug)")
	}
}

func TestPlacementTable(t *testing.T) {
	ws := workspace.New(catalog.Default(), workspace.Options{
		Viewport: geometry.Viewport{Width: 1440, Height: 900},
	})
	defer ws.Close()

	out := placementTable(ws.Snapshot(time.Time{}))
	for _, want := range []string{"Tile", "seenit", "/case/seenit", "mailto:hello@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("placementTable() missing %q", want)
		}
	}
}

func TestCountCasePages(t *testing.T) {
	files := []string{
		"index.html",
		"about/index.html",
		"case/atlas/index.html",
		"case/atlas/index.md",
		"case/tide/index.html",
		"static/deskfolio.css",
	}
	if got := countCasePages(files); got != 2 {
		t.Errorf("countCasePages() = %d, want 2", got)
	}
}
