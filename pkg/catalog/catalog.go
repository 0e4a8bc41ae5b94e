// Package catalog defines the desktop's tiles: what each one shows and what
// activating it does.
//
// A [Catalog] is immutable once built. It is constructed at startup, either
// from [Default] or from a TOML file via [Load], and passed to every
// workspace that needs it. Nothing mutates it at runtime.
package catalog

import (
	"github.com/jackparrish/deskfolio/pkg/geometry"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Tile is one catalog entry.
type Tile struct {
	ID        string         `toml:"id" json:"id"`
	Label     string         `toml:"label" json:"label"`
	Action    Action         `toml:"action" json:"action"`
	Shape     geometry.Shape `toml:"shape" json:"shape"`
	Visual    Visual         `toml:"visual" json:"visual"`
	HideLabel bool           `toml:"hide_label" json:"hide_label,omitempty"`
}

// Validate checks the tile in isolation.
func (t Tile) Validate() error {
	if t.ID == "" {
		return perrors.New(perrors.ErrCodeInvalidCatalog, "tile id cannot be empty")
	}
	if _, err := geometry.ParseShape(string(t.Shape)); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidCatalog, err, "tile %q", t.ID)
	}
	if err := t.Action.Validate(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidCatalog, err, "tile %q action", t.ID)
	}
	if err := t.Visual.Validate(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidCatalog, err, "tile %q visual", t.ID)
	}
	return nil
}

// Catalog is an ordered, read-only set of tiles with unique ids.
type Catalog struct {
	tiles []Tile
	index map[string]int
}

// New validates tiles and builds a catalog preserving their order.
func New(tiles ...Tile) (*Catalog, error) {
	c := &Catalog{
		tiles: make([]Tile, 0, len(tiles)),
		index: make(map[string]int, len(tiles)),
	}
	for _, t := range tiles {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, perrors.New(perrors.ErrCodeInvalidCatalog, "duplicate tile id %q", t.ID)
		}
		c.index[t.ID] = len(c.tiles)
		c.tiles = append(c.tiles, t)
	}
	return c, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// catalogs in tests and examples.
func MustNew(tiles ...Tile) *Catalog {
	c, err := New(tiles...)
	if err != nil {
		panic(err)
	}
	return c
}

// Tiles returns a copy of the tiles in catalog order.
func (c *Catalog) Tiles() []Tile {
	return append([]Tile(nil), c.tiles...)
}

// Lookup returns the tile with the given id.
func (c *Catalog) Lookup(id string) (Tile, bool) {
	i, ok := c.index[id]
	if !ok {
		return Tile{}, false
	}
	return c.tiles[i], true
}

// Index returns the ordinal of id, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of tiles.
func (c *Catalog) Len() int { return len(c.tiles) }

// Items returns the geometry inputs for every tile, in catalog order.
func (c *Catalog) Items() []geometry.Item {
	items := make([]geometry.Item, len(c.tiles))
	for i, t := range c.tiles {
		items[i] = geometry.Item{ID: t.ID, Shape: t.Shape}
	}
	return items
}
