package catalog

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// file is the on-disk layout of a catalog:
//
//	[[tile]]
//	id = "forest"
//	label = "FOREST.JPG"
//	shape = "landscape"
//	action = { kind = "external", target = "https://example.com" }
//	visual = { kind = "image", src = "/icons/forest.jpg" }
type file struct {
	Tile []Tile `toml:"tile"`
}

// Load reads a TOML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidCatalog, err, "read catalog")
	}
	return Parse(data)
}

// Parse decodes a TOML catalog. Unknown keys are rejected so that typos do
// not silently drop settings.
func Parse(data []byte) (*Catalog, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, perrors.New(perrors.ErrCodeInvalidCatalog, "unknown catalog keys: %s", strings.Join(keys, ", "))
	}
	if len(f.Tile) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidCatalog, "catalog has no tiles")
	}
	return New(f.Tile...)
}
