package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for each kind of cached artifact.
type Keyer interface {
	// PageKey names a rendered case study in the given format ("html" or "markdown").
	PageKey(slug, contentHash, format string) string

	// LayoutKey names a computed desktop layout for one catalog and viewport.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// IndexKey names the slug listing of a content source.
	IndexKey(source string) string
}

// LayoutKeyOpts holds the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Mode   string `json:"mode"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PageKey returns "page:<format>:<slug>:<hash>". The slug stays readable so
// that operators can find entries with a Redis SCAN.
func (DefaultKeyer) PageKey(slug, contentHash, format string) string {
	return fmt.Sprintf("page:%s:%s:%s", format, slug, contentHash)
}

// LayoutKey hashes the options so that new fields never collide with old keys.
func (DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", catalogHash, opts)
}

// IndexKey returns "index:<source>".
func (DefaultKeyer) IndexKey(source string) string {
	return "index:" + source
}

var _ Keyer = DefaultKeyer{}

// Hash is the content hash embedded in page keys: hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:" followed by the hash of parts encoded as JSON.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
