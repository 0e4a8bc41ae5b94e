package workspace

import (
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/tile"
)

// PointerEnter reports the pointer entering tile id.
func (w *Workspace) PointerEnter(id string) error {
	return w.withController(id, func(c *tile.Controller) { c.PointerEnter() })
}

// PointerLeave reports the pointer leaving tile id.
func (w *Workspace) PointerLeave(id string) error {
	return w.withController(id, func(c *tile.Controller) { c.PointerLeave() })
}

// DragStart begins dragging id with the pointer at p.
func (w *Workspace) DragStart(id string, p geometry.Point) error {
	return w.withController(id, func(c *tile.Controller) { c.DragStart(p) })
}

// DragMove moves the dragged tile id with the pointer.
func (w *Workspace) DragMove(id string, p geometry.Point) error {
	return w.withController(id, func(c *tile.Controller) { c.DragMove(p) })
}

// DragEnd drops id at the pointer position p and returns the stored,
// clamped placement.
func (w *Workspace) DragEnd(id string, p geometry.Point) (geometry.Placement, error) {
	var out geometry.Placement
	err := w.withController(id, func(c *tile.Controller) { out = c.DragEnd(p, w.opts.Now()) })
	return out, err
}

// Click activates id unless the interaction was a drag. The action runs
// after the workspace lock is released, so activators may call back in.
func (w *Workspace) Click(id string) (bool, error) {
	var ran bool
	if err := w.withController(id, func(c *tile.Controller) { ran, _ = c.Click() }); err != nil {
		return false, err
	}
	return ran, w.runPending()
}

// Key forwards a key press to id. Enter and Space activate it.
func (w *Workspace) Key(id, key string) (bool, error) {
	var ran bool
	if err := w.withController(id, func(c *tile.Controller) { ran, _ = c.Key(key) }); err != nil {
		return false, err
	}
	return ran, w.runPending()
}

// Active returns the active tile id, if any.
func (w *Workspace) Active() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active, w.active != ""
}

// PointerMove feeds the pointer position to the follower.
func (w *Workspace) PointerMove(p geometry.Point) {
	w.follow.Move(p)
}

// FollowerPosition returns the follower position and whether it is shown.
// It is shown only while a tile is active.
func (w *Workspace) FollowerPosition() (geometry.Point, bool) {
	_, active := w.Active()
	return w.follow.Position(), active
}

// FollowerRunning reports whether the follower frame loop is alive.
func (w *Workspace) FollowerRunning() bool {
	return w.follow.Running()
}

func (w *Workspace) withController(id string, fn func(c *tile.Controller)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.controllers[id]
	if !ok {
		return w.tileNotFound(id)
	}
	if w.closed {
		return nil
	}
	fn(c)
	return nil
}

func (w *Workspace) runPending() error {
	w.mu.Lock()
	fn := w.pending
	w.pending = nil
	w.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn()
}
