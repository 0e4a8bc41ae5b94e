package render

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jackparrish/deskfolio/pkg/content/markup"
	"github.com/jackparrish/deskfolio/pkg/observability"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Result is a rendered body.
type Result struct {
	HTML template.HTML

	// Unknown lists tags that had no renderer, in first-seen order.
	Unknown []string

	// Problems holds the errors of components that rendered a fallback.
	Problems []error
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the default component registry.
func WithRegistry(r *Registry) Option { return func(e *Engine) { e.registry = r } }

// WithPolicy replaces the sanitizer applied to markdown output.
func WithPolicy(p *bluemonday.Policy) Option { return func(e *Engine) { e.policy = p } }

// WithLogger sets the logger used for rendering warnings.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// Engine renders document bodies. It is safe for concurrent use.
type Engine struct {
	registry *Registry
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	logger   *log.Logger
}

// New creates an engine with the default registry.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: DefaultRegistry(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's component registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Render parses and renders body. slug is only used for reporting.
func (e *Engine) Render(ctx context.Context, slug, body string) (res *Result, err error) {
	start := time.Now()
	defer func() {
		unknown := 0
		if res != nil {
			unknown = len(res.Unknown)
		}
		observability.Content().OnRender(ctx, slug, unknown, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err = e.RenderNodes(markup.Parse(body))
	if err != nil {
		return nil, err
	}
	for _, tag := range res.Unknown {
		e.logger.Warn("unknown component", "slug", slug, "tag", tag)
	}
	for _, p := range res.Problems {
		e.logger.Warn("component fallback", "slug", slug, "err", p)
	}
	return res, nil
}

// RenderNodes renders parsed nodes.
func (e *Engine) RenderNodes(nodes []markup.Node) (*Result, error) {
	st := &renderState{seen: map[string]bool{}}
	out, err := e.renderNodes(st, nodes)
	if err != nil {
		return nil, err
	}
	return &Result{HTML: out, Unknown: st.unknown, Problems: st.problems}, nil
}

type renderState struct {
	seen     map[string]bool
	unknown  []string
	problems []error
}

func (e *Engine) renderNodes(st *renderState, nodes []markup.Node) (template.HTML, error) {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case markup.Text:
			out, err := e.markdown(n.Value)
			if err != nil {
				return "", err
			}
			b.WriteString(string(out))
		case *markup.Element:
			b.WriteString(string(e.renderElement(st, n)))
		}
	}
	return template.HTML(b.String()), nil
}

func (e *Engine) renderElement(st *renderState, el *markup.Element) template.HTML {
	children, err := e.renderNodes(st, el.Children)
	if err != nil {
		st.problems = append(st.problems, err)
		return renderError(el.Tag, err)
	}

	r, ok := e.registry.Lookup(el.Tag)
	if !ok {
		if !st.seen[el.Tag] {
			st.seen[el.Tag] = true
			st.unknown = append(st.unknown, el.Tag)
		}
		return renderUnknown(el, children)
	}

	out, err := r.Render(el, children)
	if err != nil {
		code := perrors.GetCode(err)
		if code == "" {
			code = perrors.ErrCodeInternal
		}
		st.problems = append(st.problems, perrors.Wrap(code, err, "<%s>", el.Tag))
		if out == "" {
			out = renderError(el.Tag, err)
		}
	}
	return out
}

// markdown renders a text segment and sanitizes the result.
func (e *Engine) markdown(text string) (template.HTML, error) {
	text = dedent(text)
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(text), &buf); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "markdown")
	}
	return template.HTML(e.policy.SanitizeBytes(buf.Bytes())), nil
}

// dedent removes the indentation shared by all non-blank lines, so text
// nested inside an indented component is not read as a code block.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if prefix < 0 || n < prefix {
			prefix = n
		}
	}
	if prefix <= 0 {
		return s
	}
	for i, l := range lines {
		if len(l) >= prefix {
			lines[i] = l[prefix:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
