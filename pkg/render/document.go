package render

import (
	"context"
	"strings"

	"github.com/jackparrish/deskfolio/pkg/content"
)

// RenderDocument renders the body of doc.
func (e *Engine) RenderDocument(ctx context.Context, doc *content.Document) (*Result, error) {
	return e.Render(ctx, doc.Slug, doc.Body)
}

// DocumentMarkdown renders doc and exports it as a standalone markdown
// document: title, subtitle, meta list, introduction, then the body.
func (e *Engine) DocumentMarkdown(ctx context.Context, doc *content.Document) (string, error) {
	res, err := e.RenderDocument(ctx, doc)
	if err != nil {
		return "", err
	}
	body, err := Markdown(string(res.HTML))
	if err != nil {
		return "", err
	}

	m := doc.Metadata
	var b strings.Builder
	b.WriteString("# " + m.Title + "\n\n")
	if m.Subtitle != "" {
		b.WriteString("_" + m.Subtitle + "_\n\n")
	}
	if items := m.Meta(); len(items) > 0 {
		for _, it := range items {
			b.WriteString("- **" + it.Label + ":** " + it.Value + "\n")
		}
		b.WriteString("\n")
	}
	for _, p := range m.Paragraphs() {
		b.WriteString(p + "\n\n")
	}
	b.WriteString(body)
	return strings.TrimSpace(b.String()) + "\n", nil
}

// DocumentText renders doc as plain text for terminal display.
func (e *Engine) DocumentText(ctx context.Context, doc *content.Document) (string, error) {
	res, err := e.RenderDocument(ctx, doc)
	if err != nil {
		return "", err
	}
	return PlainText(string(res.HTML))
}
