package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
	"github.com/jackparrish/deskfolio/pkg/geometry"
)

func photo(id string) Tile {
	return Tile{
		ID:     id,
		Label:  id,
		Action: OpenExternal("https://example.com/" + id),
		Shape:  geometry.Square,
		Visual: Visual{Kind: VisualImage, Src: "/static/" + id + ".jpg"},
	}
}

func TestNewPreservesOrder(t *testing.T) {
	c, err := New(photo("a"), photo("b"), photo("c"))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Index("b"))
	assert.Equal(t, -1, c.Index("zzz"))

	tile, ok := c.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "c", tile.ID)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, geometry.Item{ID: "a", Shape: geometry.Square}, items[0])
}

func TestTilesReturnsCopy(t *testing.T) {
	c := MustNew(photo("a"))
	tiles := c.Tiles()
	tiles[0].ID = "mutated"

	_, ok := c.Lookup("a")
	assert.True(t, ok, "mutating the returned slice must not affect the catalog")
	assert.Equal(t, "a", c.Tiles()[0].ID)
}

func TestNewRejectsInvalidTiles(t *testing.T) {
	tests := []struct {
		name  string
		tiles []Tile
	}{
		{"duplicate id", []Tile{photo("a"), photo("a")}},
		{"empty id", []Tile{func() Tile { t := photo("a"); t.ID = ""; return t }()}},
		{"bad shape", []Tile{func() Tile { t := photo("a"); t.Shape = "circle"; return t }()}},
		{"relative navigate", []Tile{func() Tile { t := photo("a"); t.Action = Navigate("case/x"); return t }()}},
		{"traversal navigate", []Tile{func() Tile { t := photo("a"); t.Action = Navigate("/../etc"); return t }()}},
		{"javascript url", []Tile{func() Tile { t := photo("a"); t.Action = OpenExternal("javascript:alert(1)"); return t }()}},
		{"bad email", []Tile{func() Tile { t := photo("a"); t.Action = ComposeEmail("not-an-email"); return t }()}},
		{"unknown action", []Tile{func() Tile { t := photo("a"); t.Action = Action{Kind: "teleport", Target: "/"}; return t }()}},
		{"image without src", []Tile{func() Tile { t := photo("a"); t.Visual.Src = ""; return t }()}},
		{"focal out of range", []Tile{func() Tile { t := photo("a"); t.Visual.FocalX = 140; return t }()}},
		{"text without text", []Tile{func() Tile { t := photo("a"); t.Visual = Visual{Kind: VisualText}; return t }()}},
		{"bad color", []Tile{func() Tile {
			t := photo("a")
			t.Visual = Visual{Kind: VisualText, Text: "hi", Background: "red"}
			return t
		}()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tiles...)
			require.Error(t, err)
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidCatalog), "got %v", err)
		})
	}
}

func TestActionHref(t *testing.T) {
	assert.Equal(t, "/case/seenit", Navigate("/case/seenit").Href())
	assert.Equal(t, "https://example.com", OpenExternal("https://example.com").Href())
	assert.Equal(t, "mailto:hello@example.com", ComposeEmail("hello@example.com").Href())
	assert.Equal(t, "mailto:hello@example.com", ComposeEmail("mailto:hello@example.com").Href())
	assert.NoError(t, ComposeEmail("mailto:hello@example.com").Validate())
}

func TestVisualFocalDefaults(t *testing.T) {
	x, y := Visual{Kind: VisualImage, Src: "x"}.Focal()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)

	x, y = Visual{Kind: VisualImage, Src: "x", FocalX: 30, FocalY: 80}.Focal()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 80.0, y)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 10, c.Len())

	navigate := 0
	for _, tile := range c.Tiles() {
		if tile.Action.IsNavigate() {
			navigate++
		}
	}
	assert.Equal(t, 2, navigate)

	seenit, ok := c.Lookup("seenit")
	require.True(t, ok)
	assert.Equal(t, Navigate("/case/seenit"), seenit.Action)

	mail, ok := c.Lookup("mail")
	require.True(t, ok)
	assert.Equal(t, KindEmail, mail.Action.Kind)
}

const sampleCatalog = `
[[tile]]
id = "forest"
label = "FOREST.JPG"
shape = "landscape"
action = { kind = "external", target = "https://example.com" }
visual = { kind = "image", src = "/static/icons/forest.jpg", focal_y = 30 }

[[tile]]
id = "seenit"
label = "SEENIT"
shape = "portrait"
action = { kind = "navigate", target = "/case/seenit" }

[tile.visual]
kind = "text"
text = "Seenit"
background = "#112233"
year = "2024"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	forest, _ := c.Lookup("forest")
	assert.Equal(t, geometry.Landscape, forest.Shape)
	assert.Equal(t, 30.0, forest.Visual.FocalY)

	seenit, _ := c.Lookup("seenit")
	assert.Equal(t, KindNavigate, seenit.Action.Kind)
	assert.Equal(t, "2024", seenit.Visual.Year)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[[tile]`},
		{"empty", ``},
		{"unknown key", `
[[tile]]
id = "a"
shape = "square"
colour = "red"
action = { kind = "external", target = "https://example.com" }
visual = { kind = "image", src = "/a.jpg" }
`},
		{"invalid tile", `
[[tile]]
id = "a"
shape = "blob"
action = { kind = "external", target = "https://example.com" }
visual = { kind = "image", src = "/a.jpg" }
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, perrors.ErrCodeInvalidCatalog, perrors.GetCode(err))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
