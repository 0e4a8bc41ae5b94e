package cache

// ScopedKeyer wraps a Keyer with a prefix so that several sites can share one
// Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "deskfolio:jack:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed key for a rendered page.
func (k *ScopedKeyer) PageKey(slug, contentHash, format string) string {
	return k.prefix + k.inner.PageKey(slug, contentHash, format)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(catalogHash, opts)
}

// IndexKey generates a prefixed key for a slug listing.
func (k *ScopedKeyer) IndexKey(source string) string {
	return k.prefix + k.inner.IndexKey(source)
}
