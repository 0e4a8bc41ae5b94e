package render

import (
	"html/template"
	"sort"
	"sync"

	"github.com/jackparrish/deskfolio/pkg/content/markup"
)

// Renderer renders one component element. children is the already
// rendered HTML of the element's children.
//
// A renderer that cannot produce its normal output returns an error. If
// it also returns HTML, that HTML is used as its visible fallback;
// otherwise the engine shows a generic error box.
type Renderer interface {
	Render(el *markup.Element, children template.HTML) (template.HTML, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(el *markup.Element, children template.HTML) (template.HTML, error)

// Render calls f.
func (f RendererFunc) Render(el *markup.Element, children template.HTML) (template.HTML, error) {
	return f(el, children)
}

// Registry maps tag names to renderers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: map[string]Renderer{}}
}

// DefaultRegistry returns a registry with the built-in components.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("CSImage", RendererFunc(renderImage))
	r.Register("CSTable", RendererFunc(renderTable))
	r.Register("CSYouTube", RendererFunc(renderYouTube))
	r.Register("Section", RendererFunc(renderSection))
	return r
}

// Register adds or replaces the renderer for tag.
func (r *Registry) Register(tag string, fn Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[tag] = fn
}

// Lookup returns the renderer for tag.
func (r *Registry) Lookup(tag string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[tag]
	return fn, ok
}

// Tags lists the registered tag names in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
