package site

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/render/page"
	"github.com/jackparrish/deskfolio/pkg/workspace"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// IndexTTL bounds how long the case study index is cached.
const IndexTTL = time.Minute

const (
	formatHTML     = "html"
	formatMarkdown = "markdown"
	formatText     = "text"
)

// CaseSummary is one entry of the case study index.
type CaseSummary struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Date     string `json:"date,omitempty"`
	Role     string `json:"role,omitempty"`
	Client   string `json:"client,omitempty"`
	Href     string `json:"href"`
}

func summarize(doc *content.Document) CaseSummary {
	m := doc.Metadata
	return CaseSummary{
		Slug:     doc.Slug,
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Date:     m.Date,
		Role:     m.Role,
		Client:   m.Client,
		Href:     "/case/" + doc.Slug,
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) handleDesktop(w http.ResponseWriter, r *http.Request) {
	view := s.Layout(s.opts.Viewport, s.opts.Layout)
	var buf bytes.Buffer
	if err := page.Desktop(&buf, s.opts.Site, view, page.LayoutSource{}); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := page.About(&buf, s.opts.Site); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := page.NotFound(&buf, s.opts.Site); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, http.StatusNotFound, buf.Bytes())
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	status, body, err := s.CasePage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, status, body)
}

// CasePage renders the page for slug and the status it should be served
// with: 200, 404 with the not-found page, or 500 with the unavailable
// page. The error is only set when no page could be produced at all.
func (s *Server) CasePage(ctx context.Context, slug string) (int, []byte, error) {
	var buf bytes.Buffer

	doc, err := s.opts.Repo.LoadDocument(ctx, slug)
	switch {
	case perrors.IsNotFound(err):
		if err := page.NotFound(&buf, s.opts.Site); err != nil {
			return 0, nil, err
		}
		return http.StatusNotFound, buf.Bytes(), nil
	case err != nil:
		s.opts.Logger.Error("case study unavailable", "slug", slug, "err", err)
		if err := page.Unavailable(&buf, s.opts.Site, slug); err != nil {
			return 0, nil, err
		}
		return http.StatusInternalServerError, buf.Bytes(), nil
	}

	key := s.opts.Keyer.PageKey(slug, doc.Hash, formatHTML)
	if data, ok, _ := s.pages.Get(ctx, key); ok {
		return http.StatusOK, data, nil
	}

	res, err := s.opts.Engine.RenderDocument(ctx, doc)
	if err != nil {
		return 0, nil, err
	}
	if err := page.CaseStudy(&buf, s.opts.Site, doc, res.HTML); err != nil {
		return 0, nil, err
	}
	s.store(ctx, s.pages, key, buf.Bytes(), s.opts.TTL)
	return http.StatusOK, buf.Bytes(), nil
}

func (s *Server) handleCaseMarkdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	md, err := s.CaseMarkdown(ctx, slug)
	switch {
	case perrors.IsNotFound(err):
		http.Error(w, "case study not found", http.StatusNotFound)
		return
	case perrors.Is(err, perrors.ErrCodeParse):
		http.Error(w, "case study unavailable", http.StatusInternalServerError)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(md)
}

// CaseMarkdown returns slug exported as markdown.
func (s *Server) CaseMarkdown(ctx context.Context, slug string) ([]byte, error) {
	doc, err := s.opts.Repo.LoadDocument(ctx, slug)
	if err != nil {
		return nil, err
	}
	key := s.opts.Keyer.PageKey(slug, doc.Hash, formatMarkdown)
	if data, ok, _ := s.pages.Get(ctx, key); ok {
		return data, nil
	}
	md, err := s.opts.Engine.DocumentMarkdown(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.store(ctx, s.pages, key, []byte(md), s.opts.TTL)
	return []byte(md), nil
}

// CaseText returns slug as plain text for terminals.
func (s *Server) CaseText(ctx context.Context, slug string) (string, error) {
	doc, err := s.opts.Repo.LoadDocument(ctx, slug)
	if err != nil {
		return "", err
	}
	key := s.opts.Keyer.PageKey(slug, doc.Hash, formatText)
	if data, ok, _ := s.pages.Get(ctx, key); ok {
		return string(data), nil
	}
	text, err := s.opts.Engine.DocumentText(ctx, doc)
	if err != nil {
		return "", err
	}
	s.store(ctx, s.pages, key, []byte(text), s.opts.TTL)
	return text, nil
}

// Summary returns the index entry for slug.
func (s *Server) Summary(ctx context.Context, slug string) (CaseSummary, error) {
	doc, err := s.opts.Repo.LoadDocument(ctx, slug)
	if err != nil {
		return CaseSummary{}, err
	}
	return summarize(doc), nil
}

// Catalog returns the tiles served on the desktop.
func (s *Server) Catalog() *catalog.Catalog { return s.opts.Catalog }

// Viewport returns the default desktop viewport.
func (s *Server) Viewport() geometry.Viewport { return s.opts.Viewport }

// LayoutOptions returns the configured placement options.
func (s *Server) LayoutOptions() geometry.Options { return s.opts.Layout }

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := s.opts.Keyer.IndexKey(s.opts.Repo.Source().Name())
	if data, ok, _ := s.pages.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	}

	cases, err := s.Cases(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data, _ := json.Marshal(cases)
	s.store(ctx, s.pages, key, data, IndexTTL)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Cases loads every publishable case study. Documents that fail to load
// are logged and left out.
func (s *Server) Cases(ctx context.Context) ([]CaseSummary, error) {
	slugs, err := s.opts.Repo.ListDocumentIDs(ctx)
	if err != nil {
		return nil, err
	}
	cases := make([]CaseSummary, 0, len(slugs))
	for _, slug := range slugs {
		doc, err := s.opts.Repo.LoadDocument(ctx, slug)
		if err != nil {
			s.opts.Logger.Warn("skipping case study", "slug", slug, "err", err)
			continue
		}
		cases = append(cases, summarize(doc))
	}
	return cases, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vp := s.opts.Viewport
	var err error
	if v := q.Get("w"); v != "" {
		if vp.Width, err = parseDimension(v); err != nil {
			http.Error(w, "invalid w: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("h"); v != "" {
		if vp.Height, err = parseDimension(v); err != nil {
			http.Error(w, "invalid h: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	opts := s.opts.Layout
	if v := q.Get("mode"); v != "" {
		if opts.Mode, err = geometry.ParseMode(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	key := s.opts.Keyer.LayoutKey(s.catalogHash, cache.LayoutKeyOpts{
		Width:  int(vp.Width),
		Height: int(vp.Height),
		Mode:   opts.Mode.String(),
	})
	if data, ok, _ := s.layouts.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	}

	data, err := json.Marshal(s.Layout(vp, opts))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.store(ctx, s.layouts, key, data, s.opts.TTL)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func parseDimension(v string) (float64, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > 16384 {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "must be between 1 and 16384")
	}
	return float64(n), nil
}

// Layout mounts a throwaway workspace and returns its resting snapshot.
func (s *Server) Layout(vp geometry.Viewport, opts geometry.Options) workspace.View {
	ws := workspace.New(s.opts.Catalog, workspace.Options{
		Viewport: vp,
		Layout:   opts,
		Logger:   s.opts.Logger,
	})
	defer ws.Close()

	view := ws.Snapshot(time.Time{})
	view.Session = ""
	return view
}

func (s *Server) store(ctx context.Context, c cache.Cache, key string, data []byte, ttl time.Duration) {
	if err := c.Set(ctx, key, data, ttl); err != nil {
		s.opts.Logger.Warn("cache write failed", "key", key, "err", err)
	}
}
