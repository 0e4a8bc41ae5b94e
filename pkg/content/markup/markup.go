// Package markup splits a document body into markdown text and embedded
// component elements.
//
// Components are tags whose name starts with an uppercase letter:
//
//	<CSImage src="/static/a.png" caption="Before" />
//	<Section title="Process" spacing="loose">
//	Markdown *inside* a component.
//	</Section>
//
// Attribute values are quoted strings, expressions in braces, or bare
// names (true). Expressions are decoded as YAML flow values, so
// {["A", "B"]} becomes a []any and {3} an int. Lowercase HTML tags,
// fenced code blocks and inline code spans are left in the text.
//
// Parsing never fails. Malformed tags are kept as text, stray closing
// tags are dropped and unclosed elements end at the end of input.
package markup

import (
	"fmt"
	"strings"
)

// Node is a Text or an *Element.
type Node interface {
	node()
}

// Text is a run of markdown.
type Text struct {
	Value string
}

// Element is a component tag and its children.
type Element struct {
	Tag         string
	Attrs       map[string]any
	Children    []Node
	SelfClosing bool
}

func (Text) node()     {}
func (*Element) node() {}

// Attr returns the raw attribute value.
func (e *Element) Attr(name string) (any, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// String returns an attribute as text, or def when it is absent or empty.
func (e *Element) String(name, def string) string {
	v, ok := e.Attrs[name]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return def
	}
	return s
}

// Walk visits nodes depth first. Returning false from fn skips an
// element's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if el, ok := n.(*Element); ok {
			Walk(el.Children, fn)
		}
	}
}

// Tags returns the distinct tag names in nodes, in first-seen order.
func Tags(nodes []Node) []string {
	seen := map[string]bool{}
	var tags []string
	Walk(nodes, func(n Node) bool {
		if el, ok := n.(*Element); ok && !seen[el.Tag] {
			seen[el.Tag] = true
			tags = append(tags, el.Tag)
		}
		return true
	})
	return tags
}

// TextContent concatenates the text below nodes.
func TextContent(nodes []Node) string {
	var b strings.Builder
	Walk(nodes, func(n Node) bool {
		if t, ok := n.(Text); ok {
			b.WriteString(t.Value)
		}
		return true
	})
	return b.String()
}
