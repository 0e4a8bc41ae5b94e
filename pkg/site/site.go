// Package site serves the portfolio over HTTP and pre-builds it as static
// files.
//
// Routes:
//
//	GET /                        desktop page for the default viewport
//	GET /about                   about page
//	GET /case/{slug}             case study page
//	GET /case/{slug}/markdown    case study as markdown
//	GET /api/layout?w=&h=&mode=  desktop layout as JSON
//	GET /api/cases               case study index as JSON
//	GET /healthz                 liveness
//	GET /static/*                stylesheet and media
//
// Unknown slugs get the not-found page with status 404. A case study whose
// front matter cannot be parsed gets the unavailable page with status 500.
// Rendered case studies are cached under their content hash, so editing a
// file invalidates its entry.
package site

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/render"
	"github.com/jackparrish/deskfolio/pkg/render/page"
)

// Options configures a Server.
type Options struct {
	Site    page.Site
	Catalog *catalog.Catalog
	Repo    *content.Repository

	// Engine renders case study bodies. Default: render.New().
	Engine *render.Engine

	// Cache stores rendered pages and layouts. Default: a null cache.
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration

	// Layout and Viewport select the desktop served at "/".
	Layout   geometry.Options
	Viewport geometry.Viewport

	// Media is served under /static/ next to the built-in stylesheet.
	Media fs.FS

	Logger *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Engine == nil {
		o.Engine = render.New(render.WithLogger(o.Logger))
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
		o.Viewport = geometry.Viewport{Width: 1440, Height: 900}
	}
}

// Server is the portfolio site.
type Server struct {
	opts        Options
	pages       cache.Cache
	layouts     cache.Cache
	catalogHash string
	router      chi.Router
}

// New builds the server and its routes. opts.Repo is required.
func New(opts Options) *Server {
	opts.SetDefaults()

	tiles, _ := json.Marshal(opts.Catalog.Tiles())
	s := &Server{
		opts:        opts,
		pages:       cache.Instrumented(opts.Cache, "page"),
		layouts:     cache.Instrumented(opts.Cache, "layout"),
		catalogHash: cache.Hash(tiles),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.opts.Logger))

	r.Get("/", s.handleDesktop)
	r.Get("/about", s.handleAbout)
	r.Get("/case/{slug}", s.handleCase)
	r.Get("/case/{slug}/markdown", s.handleCaseMarkdown)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/cases", s.handleCases)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(s.staticFS())))
	r.NotFound(s.handleNotFound)
	return r
}

func (s *Server) staticFS() fs.FS {
	if s.opts.Media == nil {
		return page.Assets
	}
	return overlayFS{s.opts.Media, page.Assets}
}

// overlayFS serves from the first file system that has the file.
type overlayFS []fs.FS

func (o overlayFS) Open(name string) (fs.File, error) {
	var err error
	for _, f := range o {
		var file fs.File
		if file, err = f.Open(name); err == nil {
			return file, nil
		}
	}
	return nil, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
