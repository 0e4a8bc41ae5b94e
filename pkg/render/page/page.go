// Package page assembles complete HTML documents: the desktop, case
// studies, the about page and the not-found and unavailable fallbacks.
// Every page shares one layout shell with the site header and footer.
package page

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/workspace"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Assets holds the built-in stylesheet, served under /static/.
var Assets, _ = fs.Sub(staticFS, "static")

// DefaultStylesheet is the URL of the built-in stylesheet.
const DefaultStylesheet = "/static/deskfolio.css"

// ResizeDebounce is how long the desktop waits after the last resize
// event before asking for a new layout.
const ResizeDebounce = 150 * time.Millisecond

// Link is a labelled external link.
type Link struct {
	Label string `toml:"label" json:"label"`
	Href  string `toml:"href" json:"href"`
}

// Site holds the values shared by every page.
type Site struct {
	Name       string
	Title      string
	Email      string
	About      string
	Note       string
	Social     []Link
	Year       int
	Stylesheet string
}

// withDefaults fills unset fields.
func (s Site) withDefaults() Site {
	if s.Name == "" {
		s.Name = "Portfolio"
	}
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.Year == 0 {
		s.Year = time.Now().Year()
	}
	if s.Stylesheet == "" {
		s.Stylesheet = DefaultStylesheet
	}
	return s
}

var funcs = template.FuncMap{
	"tileStyle": tileStyle,
	"focal":     focalStyle,
	"cardStyle": cardStyle,
}

var pages = map[string]*template.Template{}

func init() {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))
	for _, name := range []string{"desktop", "case", "notfound", "unavailable", "about"} {
		t := template.Must(base.Clone())
		pages[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
}

func execute(w io.Writer, name string, data any) error {
	if err := pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "render %s page", name)
	}
	return nil
}

// CaseStudy writes a case study page. body is the rendered document body.
func CaseStudy(w io.Writer, site Site, doc *content.Document, body template.HTML) error {
	return execute(w, "case", struct {
		Site Site
		Doc  *content.Document
		Body template.HTML
	}{site.withDefaults(), doc, body})
}

// NotFound writes the not-found page.
func NotFound(w io.Writer, site Site) error {
	return execute(w, "notfound", struct{ Site Site }{site.withDefaults()})
}

// Unavailable writes the fallback shown when a case study exists but
// cannot be parsed or rendered.
func Unavailable(w io.Writer, site Site, slug string) error {
	return execute(w, "unavailable", struct {
		Site Site
		Slug string
	}{site.withDefaults(), slug})
}

// About writes the about page. Site.About is split into paragraphs on
// blank lines.
func About(w io.Writer, site Site) error {
	site = site.withDefaults()
	return execute(w, "about", struct {
		Site       Site
		Paragraphs []string
	}{site, content.Metadata{Introduction: site.About}.Paragraphs()})
}

// DefaultLayoutEndpoint is where the server answers layout queries.
const DefaultLayoutEndpoint = "/api/layout"

// LayoutSource tells the desktop script where to fetch placements for the
// visitor's viewport. The script asks once on load, when the viewport
// differs from the rendered one, and again after every resize.
type LayoutSource struct {
	// Endpoint answers "?w=&h=" queries. Default: DefaultLayoutEndpoint.
	Endpoint string `json:"endpoint"`

	// Widths and Heights, when set, list pre-computed layouts stored at
	// "<Endpoint>/<w>x<h>.json", both ascending. The script picks the
	// largest width and height not exceeding the viewport, or the
	// smallest when none fits.
	Widths  []int `json:"widths,omitempty"`
	Heights []int `json:"heights,omitempty"`
}

// Static reports whether layouts come from pre-computed files.
func (s LayoutSource) Static() bool { return len(s.Widths) > 0 && len(s.Heights) > 0 }

// Desktop writes the desktop page for a workspace snapshot.
func Desktop(w io.Writer, site Site, view workspace.View, src LayoutSource) error {
	if src.Endpoint == "" {
		src.Endpoint = DefaultLayoutEndpoint
	}
	return execute(w, "desktop", struct {
		Site             Site
		View             workspace.View
		Source           LayoutSource
		ResizeDebounceMS int64
	}{site.withDefaults(), view, src, ResizeDebounce.Milliseconds()})
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "px"
}

func tileStyle(t workspace.TileView) template.CSS {
	return template.CSS(strings.Join([]string{
		"left:" + px(t.X),
		"top:" + px(t.Y),
		"width:" + px(t.W),
		"height:" + px(t.H),
		"z-index:" + strconv.Itoa(t.Z),
		"transform:rotate(" + strconv.FormatFloat(t.Rotation, 'f', 2, 64) + "deg)",
	}, ";"))
}

func focalStyle(v catalog.Visual) template.CSS {
	x, y := v.Focal()
	return template.CSS("object-position:" +
		strconv.FormatFloat(x, 'f', -1, 64) + "% " +
		strconv.FormatFloat(y, 'f', -1, 64) + "%")
}

// cardStyle colours a text card. Background is validated as a hex colour
// when the catalog loads.
func cardStyle(v catalog.Visual) template.CSS {
	if v.Background == "" {
		return ""
	}
	return template.CSS("background:" + v.Background)
}
