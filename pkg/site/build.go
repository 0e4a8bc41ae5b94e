package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/render/page"
)

// BuildReport lists what Build wrote.
type BuildReport struct {
	// Files are paths relative to the output directory.
	Files []string

	// Unavailable lists slugs whose page is the unavailable fallback.
	Unavailable []string
}

// Build writes the whole site to outDir:
//
//	index.html, about/index.html, 404.html
//	case/<slug>/index.html, case/<slug>/index.md
//	api/cases.json, api/layout.json, api/layout/<w>x<h>.json
//	static/...
//
// A static host cannot answer layout queries, so the desktop page picks
// the nearest pre-computed layout from LayoutWidths x LayoutHeights.
func (s *Server) Build(ctx context.Context, outDir string) (*BuildReport, error) {
	b := &builder{dir: outDir, report: &BuildReport{}}

	var buf bytes.Buffer
	view := s.Layout(s.opts.Viewport, s.opts.Layout)
	src := page.LayoutSource{
		Endpoint: page.DefaultLayoutEndpoint,
		Widths:   LayoutWidths,
		Heights:  LayoutHeights,
	}
	if err := page.Desktop(&buf, s.opts.Site, view, src); err != nil {
		return nil, err
	}
	if err := b.write("index.html", buf.Bytes()); err != nil {
		return nil, err
	}
	layout, _ := json.Marshal(view)
	if err := b.write("api/layout.json", layout); err != nil {
		return nil, err
	}
	for _, w := range LayoutWidths {
		for _, h := range LayoutHeights {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, _ := json.Marshal(s.Layout(geometry.Viewport{Width: float64(w), Height: float64(h)}, s.opts.Layout))
			if err := b.write(layoutFile(w, h), data); err != nil {
				return nil, err
			}
		}
	}

	buf.Reset()
	if err := page.About(&buf, s.opts.Site); err != nil {
		return nil, err
	}
	if err := b.write("about/index.html", buf.Bytes()); err != nil {
		return nil, err
	}

	buf.Reset()
	if err := page.NotFound(&buf, s.opts.Site); err != nil {
		return nil, err
	}
	if err := b.write("404.html", buf.Bytes()); err != nil {
		return nil, err
	}

	slugs, err := s.opts.Repo.ListDocumentIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status, body, err := s.CasePage(ctx, slug)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			b.report.Unavailable = append(b.report.Unavailable, slug)
		}
		if err := b.write(filepath.Join("case", slug, "index.html"), body); err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			continue
		}
		md, err := s.CaseMarkdown(ctx, slug)
		if err != nil {
			return nil, err
		}
		if err := b.write(filepath.Join("case", slug, "index.md"), md); err != nil {
			return nil, err
		}
	}

	cases, err := s.Cases(ctx)
	if err != nil {
		return nil, err
	}
	index, _ := json.Marshal(cases)
	if err := b.write("api/cases.json", index); err != nil {
		return nil, err
	}

	if err := b.copyFS(s.staticFS(), s.opts.Media, "static"); err != nil {
		return nil, err
	}
	return b.report, nil
}

// Static layout sizes, ascending. 880 and 881 straddle the mobile
// breakpoint so a bucket never changes the visitor's breakpoint.
var (
	LayoutWidths  = []int{320, 360, 390, 414, 480, 600, 768, 880, 881, 1024, 1280, 1366, 1440, 1536, 1680, 1920, 2560}
	LayoutHeights = []int{480, 568, 640, 720, 800, 900, 1080, 1440}
)

// LayoutBucket returns the pre-computed size the desktop page loads for a
// viewport: the largest listed width and height not exceeding it, or the
// smallest when none does.
func LayoutBucket(vp geometry.Viewport) (w, h int) {
	return bucket(LayoutWidths, vp.Width), bucket(LayoutHeights, vp.Height)
}

func bucket(sizes []int, v float64) int {
	best := sizes[0]
	for _, s := range sizes {
		if float64(s) <= math.Round(v) {
			best = s
		}
	}
	return best
}

func layoutFile(w, h int) string {
	return filepath.Join("api", "layout", fmt.Sprintf("%dx%d.json", w, h))
}

type builder struct {
	dir    string
	report *BuildReport
}

func (b *builder) write(rel string, data []byte) error {
	path := filepath.Join(b.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	b.report.Files = append(b.report.Files, filepath.ToSlash(rel))
	return nil
}

// copyFS copies every file of the built-in assets and the media tree,
// reading through assets so media files shadow built-in ones.
func (b *builder) copyFS(assets fs.FS, media fs.FS, prefix string) error {
	roots := []fs.FS{page.Assets}
	if media != nil {
		roots = append(roots, media)
	}
	seen := map[string]bool{}
	for _, root := range roots {
		err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || seen[path] {
				return err
			}
			seen[path] = true
			data, err := fs.ReadFile(assets, path)
			if err != nil {
				return err
			}
			return b.write(filepath.Join(prefix, filepath.FromSlash(path)), data)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
