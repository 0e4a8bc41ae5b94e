package page

import (
	"bytes"
	"html/template"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/workspace"
)

var testSite = Site{
	Name:   "JACK PARRISH",
	Title:  "Jack Parrish",
	Email:  "hello@example.com",
	About:  "I design things.\n\nSometimes I build them.",
	Social: []Link{{Label: "LinkedIn", Href: "https://linkedin.com"}},
	Year:   2025,
}

func parse(t *testing.T, buf *bytes.Buffer) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc
}

func byClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" && strings.Contains(" "+a.Val+" ", " "+class+" ") {
					out = append(out, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestCaseStudy(t *testing.T) {
	doc := &content.Document{
		Slug: "seenit",
		Metadata: content.Metadata{
			Title:        "Seenit",
			Subtitle:     "Video feedback",
			Date:         "2024",
			Client:       "Seenit Ltd",
			Introduction: "One.\n\nTwo.",
		},
	}
	var buf bytes.Buffer
	require.NoError(t, CaseStudy(&buf, testSite, doc, template.HTML(`<p class="body">Rendered</p>`)))
	root := parse(t, &buf)

	require.Len(t, byClass(root, "case-study-title"), 1)
	assert.Equal(t, "Seenit", text(byClass(root, "case-study-title")[0]))
	assert.Equal(t, "Video feedback", text(byClass(root, "case-study-subtitle")[0]))

	items := byClass(root, "case-study-meta-item")
	require.Len(t, items, 2)
	assert.Equal(t, "Date2024", text(items[0]))
	assert.Equal(t, "CompanySeenit Ltd", text(items[1]))

	intro := byClass(root, "case-study-introduction")
	require.Len(t, intro, 1)
	assert.Equal(t, "One.\nTwo.", text(intro[0]))

	assert.Len(t, byClass(root, "body"), 1)
	assert.Contains(t, buf.String(), "<title>Seenit | Jack Parrish</title>")
	assert.Contains(t, buf.String(), `href="mailto:hello@example.com"`)
	assert.Contains(t, buf.String(), "&copy; 2025")
}

func TestCaseStudyMinimal(t *testing.T) {
	doc := &content.Document{Slug: "x", Metadata: content.Metadata{Title: "X <script>"}}
	var buf bytes.Buffer
	require.NoError(t, CaseStudy(&buf, Site{}, doc, ""))
	root := parse(t, &buf)

	assert.Empty(t, byClass(root, "case-study-subtitle"))
	assert.Empty(t, byClass(root, "case-study-meta"))
	assert.Empty(t, byClass(root, "case-study-introduction"))
	assert.NotContains(t, buf.String(), "X <script>")
	assert.Contains(t, buf.String(), `href="/static/deskfolio.css"`)
}

func TestNotFound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NotFound(&buf, testSite))
	assert.Contains(t, buf.String(), "Page not found")
	assert.Contains(t, buf.String(), `class="not-found"`)
}

func TestUnavailable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unavailable(&buf, testSite, "broken"))
	assert.Contains(t, buf.String(), "<code>broken</code>")
	assert.Contains(t, buf.String(), `role="alert"`)
}

func TestAbout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, About(&buf, testSite))
	assert.Contains(t, buf.String(), "<p>I design things.</p>")
	assert.Contains(t, buf.String(), "<p>Sometimes I build them.</p>")
}

func TestDesktop(t *testing.T) {
	ws := workspace.New(catalog.Default(), workspace.Options{
		Viewport: geometry.Viewport{Width: 1440, Height: 900},
	})
	defer ws.Close()

	var buf bytes.Buffer
	require.NoError(t, Desktop(&buf, testSite, ws.Snapshot(time.Unix(0, 0)), LayoutSource{}))
	root := parse(t, &buf)

	icons := byClass(root, "desktop-icon")
	assert.Len(t, icons, catalog.Default().Len())
	assert.Contains(t, buf.String(), `href="/case/seenit"`)
	assert.Contains(t, buf.String(), `href="mailto:hello@example.com"`)
	assert.Contains(t, buf.String(), "z-index:")
	assert.Contains(t, buf.String(), "object-position:")
	assert.Contains(t, buf.String(), "desktop-desktop")
	assert.Contains(t, buf.String(), `"endpoint":"/api/layout"`)
	assert.Contains(t, buf.String(), `src.endpoint + "?w="`)
}

func TestDesktopLayoutAtMount(t *testing.T) {
	ws := workspace.New(catalog.Default(), workspace.Options{
		Viewport: geometry.Viewport{Width: 1440, Height: 900},
	})
	defer ws.Close()

	var buf bytes.Buffer
	require.NoError(t, Desktop(&buf, testSite, ws.Snapshot(time.Unix(0, 0)), LayoutSource{}))
	out := buf.String()

	assert.Contains(t, out, `document.addEventListener("DOMContentLoaded", mount)`)
	assert.Regexp(t, `w:\s*1440\s*,\s*h:\s*900\s*}`, out)
	assert.Contains(t, out, `window.addEventListener("resize"`)
	assert.Regexp(t, `setTimeout\(relayout,\s*150\s*\)`, out)
}

func TestDesktopStaticLayouts(t *testing.T) {
	ws := workspace.New(catalog.Default(), workspace.Options{
		Viewport: geometry.Viewport{Width: 390, Height: 800},
	})
	defer ws.Close()

	var buf bytes.Buffer
	src := LayoutSource{Endpoint: "/api/layout", Widths: []int{390, 1440}, Heights: []int{800, 900}}
	require.True(t, src.Static())
	require.NoError(t, Desktop(&buf, testSite, ws.Snapshot(time.Unix(0, 0)), src))
	out := buf.String()

	assert.Contains(t, out, `"widths":[390,1440]`)
	assert.Contains(t, out, `"heights":[800,900]`)
	assert.Regexp(t, `w:\s*390\s*,\s*h:\s*800\s*}`, out)
	assert.Contains(t, out, "desktop-mobile")
	assert.False(t, LayoutSource{}.Static())
}

func TestAssets(t *testing.T) {
	data, err := fs.ReadFile(Assets, "deskfolio.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".cs-section-loose")
}
