package content

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

const seenit = `---
title: Seenit
subtitle: Video feedback for teams
date: 2024
role: Lead designer
client: Seenit Ltd
introduction: |
  First paragraph.

  Second paragraph.
---

<Section title="Overview">
Body text.
</Section>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"seenit.mdx":    {Data: []byte(seenit)},
		"atlas.md":      {Data: []byte("+++\ntitle = \"Atlas\"\ndate = 2023-05-01\n+++\nHello\n")},
		"_draft.mdx":    {Data: []byte("---\ntitle: Draft\n---\n")},
		".hidden.mdx":   {Data: []byte("---\ntitle: Hidden\n---\n")},
		"notes.txt":     {Data: []byte("ignored")},
		"broken.mdx":    {Data: []byte("---\ntitle: [unterminated\n---\n")},
		"assets/a.mdx":  {Data: []byte("---\ntitle: Nested\n---\n")},
		"Bad Name.mdx":  {Data: []byte("---\ntitle: Bad\n---\n")},
		"untitled.mdx":  {Data: []byte("---\nrole: Nobody\n---\n")},
		"nofence.mdx":   {Data: []byte("just text\n")},
		"listfield.mdx": {Data: []byte("---\ntitle: X\ntags: [a, b]\n---\n")},
	}
}

func TestListDocumentIDs(t *testing.T) {
	repo := NewRepository(NewFSSource(testFS(), "test"), nil)

	ids, err := repo.ListDocumentIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"atlas", "broken", "listfield", "nofence", "seenit", "untitled"}, ids)
}

func TestListDocumentIDsEmpty(t *testing.T) {
	repo := NewRepository(NewFSSource(fstest.MapFS{}, "empty"), nil)

	ids, err := repo.ListDocumentIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadDocument(t *testing.T) {
	repo := NewRepository(NewFSSource(testFS(), "test"), nil)

	doc, err := repo.LoadDocument(context.Background(), "seenit")
	require.NoError(t, err)

	assert.Equal(t, "seenit", doc.Slug)
	assert.Equal(t, "Seenit", doc.Metadata.Title)
	assert.Equal(t, "Video feedback for teams", doc.Metadata.Subtitle)
	assert.Equal(t, "2024", doc.Metadata.Date)
	assert.Equal(t, []MetaItem{
		{Label: "Date", Value: "2024"},
		{Label: "Role", Value: "Lead designer"},
		{Label: "Company", Value: "Seenit Ltd"},
	}, doc.Metadata.Meta())
	assert.Equal(t, []string{"First paragraph.", "Second paragraph."}, doc.Metadata.Paragraphs())
	assert.Contains(t, doc.Body, `<Section title="Overview">`)
	assert.Len(t, doc.Hash, 64)
}

func TestLoadDocumentTOML(t *testing.T) {
	repo := NewRepository(NewFSSource(testFS(), "test"), nil)

	doc, err := repo.LoadDocument(context.Background(), "atlas")
	require.NoError(t, err)
	assert.Equal(t, "Atlas", doc.Metadata.Title)
	assert.Equal(t, "2023-05-01", doc.Metadata.Date)
	assert.Equal(t, "Hello\n", doc.Body)
}

func TestLoadDocumentNotFound(t *testing.T) {
	// A catalog tile can point at a case study whose file is missing.
	fsys := testFS()
	delete(fsys, "seenit.mdx")
	repo := NewRepository(NewFSSource(fsys, "test"), nil)

	for _, slug := range []string{"seenit", "_draft", "../etc/passwd", "assets/a", "", "Bad Name"} {
		_, err := repo.LoadDocument(context.Background(), slug)
		require.Error(t, err, slug)
		assert.True(t, perrors.IsNotFound(err), "slug %q: %v", slug, err)
	}
}

func TestLoadDocumentParseErrors(t *testing.T) {
	repo := NewRepository(NewFSSource(testFS(), "test"), nil)

	for _, slug := range []string{"broken", "untitled", "nofence", "listfield"} {
		_, err := repo.LoadDocument(context.Background(), slug)
		require.Error(t, err, slug)
		assert.True(t, perrors.Is(err, perrors.ErrCodeParse), "slug %q: %v", slug, err)
		assert.False(t, perrors.IsNotFound(err), slug)
	}
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		title string
		body  string
		extra map[string]string
		fail  bool
	}{
		{name: "yaml", raw: "---\ntitle: A\n---\nbody", title: "A", body: "body"},
		{name: "crlf and bom", raw: "\ufeff---\r\ntitle: A\r\n---\r\nbody", title: "A", body: "body"},
		{name: "extra keys", raw: "---\ntitle: A\nyear: 2020\nfeatured: true\n---\n", title: "A", extra: map[string]string{"year": "2020", "featured": "true"}},
		{name: "toml", raw: "+++\ntitle = 'T'\n+++\n\nx", title: "T", body: "x"},
		{name: "empty body", raw: "---\ntitle: A\n---", title: "A"},
		{name: "unterminated", raw: "---\ntitle: A\n", fail: true},
		{name: "bad toml", raw: "+++\ntitle = \n+++\n", fail: true},
		{name: "empty", raw: "", fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := ParseFrontMatter([]byte(tt.raw))
			if tt.fail {
				require.Error(t, err)
				assert.True(t, perrors.Is(err, perrors.ErrCodeParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, meta.Title)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.extra, meta.Extra)
		})
	}
}

func TestMetadataGet(t *testing.T) {
	m := Metadata{Title: "T", Client: "C", Extra: map[string]string{"year": "2020"}}
	assert.Equal(t, "T", m.Get("title"))
	assert.Equal(t, "C", m.Get("client"))
	assert.Equal(t, "2020", m.Get("year"))
	assert.Equal(t, "", m.Get("missing"))
}

func TestFSSourcePrefersMDX(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"a.mdx": {Data: []byte("mdx")},
		"a.md":  {Data: []byte("md")},
	}, "test")

	slugs, err := src.Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs)

	data, err := src.Read(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "mdx", string(data))
}

func TestFSSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSSource(testFS(), "test").Slugs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
