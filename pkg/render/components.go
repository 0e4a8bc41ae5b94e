package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/jackparrish/deskfolio/pkg/content/markup"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

var componentTemplates = template.Must(template.New("components").Parse(`
{{define "image"}}<figure class="cs-image-figure">
<div class="cs-image-wrapper{{with .Aspect}} {{.}}{{end}}">
{{- if .Video}}
<div class="cs-video-frame"><video class="cs-image" autoplay loop muted playsinline>
{{- range $.Types}}<source src="{{$.Src}}" type="{{.}}">{{end -}}
</video></div>
{{- else}}
<img class="cs-image" src="{{.Src}}" alt="{{.Alt}}" loading="lazy">
{{- end}}
</div>
{{- with .Caption}}
<figcaption class="cs-image-caption">{{.}}</figcaption>
{{- end}}
</figure>
{{end}}

{{define "table"}}<div class="cs-table-wrapper">
<table class="cs-table">
{{- if .Headers}}
<thead><tr>{{range .Headers}}<th class="cs-table-header">{{.}}</th>{{end}}</tr></thead>
{{- end}}
<tbody>
{{- range .Rows}}
<tr class="cs-table-row">{{range .}}<td class="cs-table-cell">{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</div>
{{end}}

{{define "youtube"}}<figure class="cs-image-figure cs-youtube">
<div class="cs-youtube-frame">
<iframe src="{{.Src}}" title="{{.Title}}" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>
</div>
</figure>
{{end}}

{{define "embed-error"}}<div class="cs-embed-error" role="alert">{{.}}</div>
{{end}}

{{define "section"}}<section class="cs-section cs-section-{{.Spacing}}">
{{- with .Title}}
<h2 class="cs-section-title">{{.}}</h2>
{{- end}}
<div class="cs-section-content">
{{.Children}}</div>
</section>
{{end}}

{{define "unknown"}}<div data-component="{{.Tag}}">
{{.Children}}</div>
{{end}}

{{define "error"}}<div class="cs-render-error" role="alert"><strong>{{.Tag}}</strong> {{.Message}}</div>
{{end}}
`))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := componentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "template %s", name)
	}
	return template.HTML(buf.String()), nil
}

// aspectClasses maps CSImage aspect-ratio presets to wrapper classes.
var aspectClasses = map[string]string{
	"16:9": "cs-aspect-16-9",
	"4:3":  "cs-aspect-4-3",
	"1:1":  "cs-aspect-square",
	"3:2":  "cs-aspect-3-2",
	"none": "",
}

var videoExt = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov)$`)

// IsVideo reports whether src names a video file.
func IsVideo(src string) bool { return videoExt.MatchString(src) }

func renderImage(el *markup.Element, _ template.HTML) (template.HTML, error) {
	src := el.String("src", "")
	if src == "" {
		return "", perrors.New(perrors.ErrCodeInvalidInput, "src is required")
	}
	aspect, ok := aspectClasses[el.String("aspectRatio", "16:9")]
	if !ok {
		aspect = aspectClasses["16:9"]
	}
	return execute("image", struct {
		Src, Alt, Caption, Aspect string
		Video                     bool
		Types                     []string
	}{
		Src:     src,
		Alt:     el.String("alt", ""),
		Caption: el.String("caption", ""),
		Aspect:  aspect,
		Video:   IsVideo(src),
		Types:   []string{"video/mp4", "video/webm", "video/ogg", "video/quicktime"},
	})
}

func renderTable(el *markup.Element, _ template.HTML) (template.HTML, error) {
	headers, err := stringList(el.Attrs["headers"])
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "headers")
	}

	var rows [][]string
	if raw, ok := el.Attrs["rows"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return "", perrors.New(perrors.ErrCodeInvalidInput, "rows must be a list of lists")
		}
		for i, r := range list {
			row, err := stringList(r)
			if err != nil {
				return "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "row %d", i)
			}
			rows = append(rows, row)
		}
	}

	// Every row gets the same number of cells.
	cols := len(headers)
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if len(headers) > 0 {
		headers = pad(headers, cols)
	}
	for i := range rows {
		rows[i] = pad(rows[i], cols)
	}

	return execute("table", struct {
		Headers []string
		Rows    [][]string
	}{headers, rows})
}

func stringList(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, len(x))
		for i, item := range x {
			if item != nil {
				out[i] = fmt.Sprint(item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", v)
}

func pad(cells []string, n int) []string {
	for len(cells) < n {
		cells = append(cells, "")
	}
	return cells
}

var youTubeID = regexp.MustCompile(`(?:youtube\.com/shorts/|youtu\.be/|youtube\.com/watch\?v=)([^&\n?#]+)`)

// YouTubeEmbedParams are the player parameters appended to embed URLs.
const YouTubeEmbedParams = "vq=hd1080&autoplay=0&rel=0&modestbranding=1&iv_load_policy=3&fs=1&cc_load_policy=0&start=0&end=0&loop=0&controls=1&disablekb=0&enablejsapi=0"

// ExtractVideoID returns the video id in a youtube.com/watch?v=, youtu.be/
// or youtube.com/shorts/ URL. Other URLs fail with UNRECOGNIZED_EMBED.
func ExtractVideoID(url string) (string, error) {
	m := youTubeID.FindStringSubmatch(url)
	if m == nil {
		return "", perrors.New(perrors.ErrCodeUnrecognizedEmbed, "no video id in %q", url)
	}
	return m[1], nil
}

// EmbedURL returns the player URL for a video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id + "?" + YouTubeEmbedParams
}

func renderYouTube(el *markup.Element, _ template.HTML) (template.HTML, error) {
	id, err := ExtractVideoID(el.String("url", ""))
	if err != nil {
		fallback, terr := execute("embed-error", "Invalid YouTube URL")
		if terr != nil {
			return "", terr
		}
		return fallback, err
	}
	return execute("youtube", struct {
		Src   template.URL
		Title string
	}{
		Src:   template.URL(EmbedURL(id)),
		Title: el.String("title", "YouTube video"),
	})
}

func renderSection(el *markup.Element, children template.HTML) (template.HTML, error) {
	spacing := el.String("spacing", "normal")
	switch spacing {
	case "tight", "normal", "loose":
	default:
		spacing = "normal"
	}
	return execute("section", struct {
		Title, Spacing string
		Children       template.HTML
	}{el.String("title", ""), spacing, children})
}

func renderUnknown(el *markup.Element, children template.HTML) template.HTML {
	out, err := execute("unknown", struct {
		Tag      string
		Children template.HTML
	}{el.Tag, children})
	if err != nil {
		return children
	}
	return out
}

func renderError(tag string, err error) template.HTML {
	out, terr := execute("error", struct{ Tag, Message string }{tag, err.Error()})
	if terr != nil {
		return template.HTML(template.HTMLEscapeString(tag + ": " + err.Error()))
	}
	return out
}
