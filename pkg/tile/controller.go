// Package tile implements the per-tile interaction state machine of the
// desktop: hover, drag, drop clamping, click and keyboard activation, and the
// idle float animation.
//
// A [Controller] is driven by its host's event loop and is not safe for
// concurrent use. The [Host] it reports to (normally a workspace) serializes
// every call.
package tile

import (
	"time"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// State is the interaction state of a tile.
type State int

const (
	Idle State = iota
	Hovered
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// Host receives a controller's reports.
type Host interface {
	// OnEngage marks the tile as the active one.
	OnEngage(id string)

	// OnDisengage clears the tile's active status.
	OnDisengage(id string)

	// OnDragEnd stores the clamped drop position.
	OnDragEnd(id string, x, y float64)

	// Bounds returns the tile's usable region for the workspace as it is
	// right now. Controllers never cache it.
	Bounds(id string) geometry.Bounds
}

// Controller tracks one tile.
type Controller struct {
	tile  catalog.Tile
	host  Host
	act   Activator
	float Float

	state State
	base  geometry.Placement

	origin geometry.Point
	offset geometry.Point

	// dragged is set by DragStart and consumed by the next Click, so the
	// click that terminates a drag never activates the tile. Cancel clears
	// it since no click follows a cancelled drag.
	dragged bool
}

// NewController creates a controller for t resting at base. ordinal seeds the
// float parameters.
func NewController(t catalog.Tile, ordinal int, base geometry.Placement, host Host, act Activator) *Controller {
	if act == nil {
		act = NopActivator{}
	}
	return &Controller{
		tile:  t,
		host:  host,
		act:   act,
		float: NewFloat(ordinal),
		base:  base,
	}
}

// ID returns the tile id.
func (c *Controller) ID() string { return c.tile.ID }

// Tile returns the catalog entry.
func (c *Controller) Tile() catalog.Tile { return c.tile }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Base returns the resting placement, without float or drag offset.
func (c *Controller) Base() geometry.Placement { return c.base }

// SetBase replaces the resting placement, e.g. after a layout recompute.
// An in-flight drag keeps its pointer offset relative to the new base.
func (c *Controller) SetBase(p geometry.Placement) {
	p.ID = c.tile.ID
	c.base = p
}

// PointerEnter moves an idle tile to Hovered and engages it.
func (c *Controller) PointerEnter() {
	if c.state != Idle {
		return
	}
	c.state = Hovered
	c.host.OnEngage(c.tile.ID)
}

// PointerLeave returns a hovered tile to Idle. It has no effect mid-drag:
// a fast drag routinely outruns the tile.
func (c *Controller) PointerLeave() {
	if c.state != Hovered {
		return
	}
	c.state = Idle
	c.host.OnDisengage(c.tile.ID)
}

// DragStart begins a drag with the pointer at p. The float animation is
// suspended until the drag ends.
func (c *Controller) DragStart(p geometry.Point) {
	if c.state == Dragging {
		return
	}
	c.state = Dragging
	c.origin = p
	c.offset = geometry.Point{}
	c.dragged = true
	c.host.OnEngage(c.tile.ID)
}

// DragMove follows the pointer.
func (c *Controller) DragMove(p geometry.Point) {
	if c.state != Dragging {
		return
	}
	c.offset = p.Sub(c.origin)
}

// DragEnd drops the tile where the pointer released it, clamped into the
// host's live bounds, and restarts the float from a neutral phase at now.
// It returns the stored placement.
func (c *Controller) DragEnd(p geometry.Point, now time.Time) geometry.Placement {
	if c.state != Dragging {
		return c.base
	}
	c.offset = p.Sub(c.origin)
	x, y := c.host.Bounds(c.tile.ID).Clamp(c.base.X+c.offset.X, c.base.Y+c.offset.Y)

	c.base.X, c.base.Y = x, y
	c.offset = geometry.Point{}
	c.state = Idle
	c.float.Restart(now)

	c.host.OnDragEnd(c.tile.ID, x, y)
	c.host.OnDisengage(c.tile.ID)
	return c.base
}

// Cancel aborts a drag without moving the tile.
func (c *Controller) Cancel() {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	c.offset = geometry.Point{}
	c.dragged = false
	c.host.OnDisengage(c.tile.ID)
}

// Click activates the tile unless the interaction included a drag. It
// reports whether the action ran.
func (c *Controller) Click() (bool, error) {
	if c.dragged {
		c.dragged = false
		return false, nil
	}
	return true, Activate(c.act, c.tile.Action)
}

// Key handles a key press. Enter and Space activate the tile the same way a
// click does, independent of any earlier drag.
func (c *Controller) Key(name string) (bool, error) {
	switch name {
	case "enter", "Enter", " ", "space", "Space":
		c.dragged = false
		return true, Activate(c.act, c.tile.Action)
	}
	return false, nil
}

// Position returns the visual placement at now: the base plus the drag
// offset while dragging, otherwise the base plus the float offset. A zero
// now leaves out the float offset.
func (c *Controller) Position(now time.Time) geometry.Placement {
	p := c.base
	if c.state == Dragging {
		p.X += c.offset.X
		p.Y += c.offset.Y
		return p
	}
	if now.IsZero() {
		return p
	}
	p.Y += c.float.Offset(now)
	return p
}
