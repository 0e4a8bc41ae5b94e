package workspace

import (
	"time"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// View is a render-ready snapshot of the workspace.
type View struct {
	Session    string            `json:"session"`
	Viewport   geometry.Viewport `json:"viewport"`
	Breakpoint string            `json:"breakpoint"`
	Mode       string            `json:"mode"`

	// Tiles are ordered bottom to top.
	Tiles  []TileView `json:"tiles"`
	Active string     `json:"active,omitempty"`

	// Follower is nil while no tile is active.
	Follower *geometry.Point `json:"follower,omitempty"`
}

// TileView is one tile as it should be drawn.
type TileView struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	HideLabel bool           `json:"hide_label,omitempty"`
	Href      string         `json:"href"`
	Kind      string         `json:"kind"`
	Visual    catalog.Visual `json:"visual"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	W         float64        `json:"w"`
	H         float64        `json:"h"`
	Rotation  float64        `json:"rotation"`
	Z         int            `json:"z"`
	State     string         `json:"state"`
}

// Snapshot captures the workspace at now, including float offsets. A zero
// now gives resting positions.
func (w *Workspace) Snapshot(now time.Time) View {
	w.mu.Lock()
	defer w.mu.Unlock()

	bp := geometry.Classify(w.vp)
	v := View{
		Session:    w.id.String(),
		Viewport:   w.vp,
		Breakpoint: bp.String(),
		Mode:       w.layout.Mode.String(),
		Active:     w.active,
		Tiles:      make([]TileView, 0, len(w.order)),
	}
	for _, id := range w.sortedOrderLocked() {
		c := w.controllers[id]
		t := c.Tile()
		p := c.Position(now)
		size := geometry.Footprint(t.Shape, bp)
		v.Tiles = append(v.Tiles, TileView{
			ID:        t.ID,
			Label:     t.Label,
			HideLabel: t.HideLabel,
			Href:      t.Action.Href(),
			Kind:      string(t.Action.Kind),
			Visual:    t.Visual,
			X:         p.X,
			Y:         p.Y,
			W:         size.W,
			H:         size.H,
			Rotation:  p.Rotation,
			Z:         w.zIndexLocked(id),
			State:     c.State().String(),
		})
	}
	if w.active != "" {
		pos := w.follow.Position()
		v.Follower = &pos
	}
	return v
}

// HitTest returns the top-most tile under p, using unrotated boxes at now.
func (w *Workspace) HitTest(p geometry.Point, now time.Time) (string, bool) {
	v := w.Snapshot(now)
	for i := len(v.Tiles) - 1; i >= 0; i-- {
		t := v.Tiles[i]
		if p.X >= t.X && p.X < t.X+t.W && p.Y >= t.Y && p.Y < t.Y+t.H {
			return t.ID, true
		}
	}
	return "", false
}
