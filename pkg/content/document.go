package content

import (
	"regexp"
	"strings"
)

// Document is one loaded case study. It is never modified after loading.
type Document struct {
	Slug     string   `json:"slug"`
	Metadata Metadata `json:"metadata"`
	Body     string   `json:"-"`

	// Hash identifies the raw source bytes. Rendered pages are cached under it.
	Hash string `json:"hash"`
}

// Metadata is the front matter of a document.
type Metadata struct {
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Date         string            `json:"date,omitempty"`
	Role         string            `json:"role,omitempty"`
	Client       string            `json:"client,omitempty"`
	Introduction string            `json:"introduction,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// MetaItem is one labelled fact shown under a case study's title.
type MetaItem struct {
	Label string
	Value string
}

// Meta returns the Date, Role and Company items that are set, in that order.
func (m Metadata) Meta() []MetaItem {
	var items []MetaItem
	if m.Date != "" {
		items = append(items, MetaItem{Label: "Date", Value: m.Date})
	}
	if m.Role != "" {
		items = append(items, MetaItem{Label: "Role", Value: m.Role})
	}
	if m.Client != "" {
		items = append(items, MetaItem{Label: "Company", Value: m.Client})
	}
	return items
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// Paragraphs splits the introduction on blank lines.
func (m Metadata) Paragraphs() []string {
	text := strings.ReplaceAll(m.Introduction, "\r\n", "\n")
	var out []string
	for _, p := range blankLine.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Get returns a field by front matter key, including extra fields.
func (m Metadata) Get(key string) string {
	switch key {
	case "title":
		return m.Title
	case "subtitle":
		return m.Subtitle
	case "date":
		return m.Date
	case "role":
		return m.Role
	case "client":
		return m.Client
	case "introduction":
		return m.Introduction
	}
	return m.Extra[key]
}
