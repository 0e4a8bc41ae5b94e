package workspace

import (
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/observability"
)

// host is the tile.Host handed to the workspace's own controllers. Its
// methods run while the workspace lock is held by the interaction that
// triggered them.
type host struct{ w *Workspace }

func (h host) OnEngage(id string)                { h.w.engageLocked(id) }
func (h host) OnDisengage(id string)             { h.w.disengageLocked(id) }
func (h host) OnDragEnd(id string, x, y float64) { h.w.dropLocked(id, x, y) }
func (h host) Bounds(id string) geometry.Bounds  { return h.w.boundsLocked(id) }

// OnEngage makes id the active tile. It implements tile.Host for
// controllers owned by someone else.
func (w *Workspace) OnEngage(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engageLocked(id)
}

// OnDisengage clears id if it is the active tile.
func (w *Workspace) OnDisengage(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disengageLocked(id)
}

// OnDragEnd stores a drop position for id and promotes it.
func (w *Workspace) OnDragEnd(id string, x, y float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dropLocked(id, x, y)
}

// Bounds returns the usable region of id's footprint at the current viewport.
func (w *Workspace) Bounds(id string) geometry.Bounds {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.boundsLocked(id)
}

func (w *Workspace) engageLocked(id string) {
	if w.closed {
		return
	}
	if _, ok := w.controllers[id]; !ok {
		return
	}
	prev := w.active
	w.active = id
	w.promoteLocked(id)

	// Only one tile may be active: a previous hover is dropped.
	if prev != "" && prev != id {
		if c := w.controllers[prev]; c != nil {
			c.PointerLeave()
			c.Cancel()
		}
	}
	if prev == "" {
		w.follow.Start(w.ctx, w.opts.OnFollowerFrame)
	}
	w.logger.Debug("tile engaged", "tile", id)
}

func (w *Workspace) disengageLocked(id string) {
	if w.active != id {
		return
	}
	w.active = ""
	w.follow.Stop()
	w.logger.Debug("tile disengaged", "tile", id)
}

func (w *Workspace) dropLocked(id string, x, y float64) {
	p, ok := w.placements[id]
	if !ok {
		return
	}
	p.X, p.Y = x, y
	w.placements[id] = p
	w.promoteLocked(id)

	w.logger.Debug("tile dropped", "tile", id, "x", x, "y", y)
	observability.Layout().OnDragEnd(w.ctx, w.id.String(), id, x, y)
}

func (w *Workspace) boundsLocked(id string) geometry.Bounds {
	t, _ := w.cat.Lookup(id)
	return geometry.UsableBounds(w.vp, geometry.Footprint(t.Shape, geometry.Classify(w.vp)))
}
