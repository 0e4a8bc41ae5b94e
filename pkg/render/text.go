package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// blockAtoms end a line of plain text.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Figure: true,
	atom.Figcaption: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Li: true, atom.Tr: true,
	atom.Br: true, atom.Pre: true, atom.Blockquote: true, atom.Table: true,
	atom.Dt: true, atom.Dd: true,
}

// PlainText strips markup from a rendered fragment. Block elements end a
// line and table cells are separated by " | ". Blank lines are dropped,
// as are script, style, iframe and video elements.
func PlainText(fragment string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeParse, err, "parse html")
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Iframe, atom.Video:
				return
			case atom.Img:
				for _, a := range n.Attr {
					if a.Key == "alt" && a.Val != "" {
						b.WriteString("[" + a.Val + "]")
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) && c.NextSibling != nil {
				b.WriteString(" | ")
			}
		}
		if n.Type == html.ElementNode && blockAtoms[n.DataAtom] {
			b.WriteString("\n")
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return collapseLines(b.String()), nil
}

func collapseLines(s string) string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// Markdown converts a rendered fragment to markdown.
func Markdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "convert to markdown")
	}
	return strings.TrimSpace(md), nil
}
