// Package workspace owns one desktop session: the placement of every tile,
// the stacking order, the single active tile and the companion follower.
//
// A [Workspace] is mounted with a viewport, computes placements through
// package geometry, and hands each tile a [tile.Controller]. Hosts (the
// terminal desktop, tests) drive interactions through the workspace's
// methods, which serialize access to the shared state. Placements live only
// as long as the workspace; nothing is persisted.
package workspace

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/follower"
	"github.com/jackparrish/deskfolio/pkg/geometry"
	"github.com/jackparrish/deskfolio/pkg/observability"
	"github.com/jackparrish/deskfolio/pkg/tile"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// NavigateBonus lifts tiles with a Navigate action above every other tile,
// however recently the others were promoted.
const NavigateBonus = 1000

// DefaultViewport is used when Options.Viewport is zero.
var DefaultViewport = geometry.Viewport{Width: 1440, Height: 900}

// Options configures a Workspace.
type Options struct {
	// Viewport is the size at mount. Default: DefaultViewport.
	Viewport geometry.Viewport

	// Layout is passed to geometry.Compute on every recompute.
	Layout geometry.Options

	// Pointer selects the follower strategy. Default: follower.Fine.
	Pointer follower.Pointer

	// Follower holds extra follower options such as a test clock.
	Follower []follower.Option

	// OnFollowerFrame receives follower positions from the frame loop. It
	// must not call back into the workspace.
	OnFollowerFrame func(geometry.Point)

	// Activator performs tile actions. Default: tile.NopActivator.
	Activator tile.Activator

	// Logger receives debug events. Default: discard.
	Logger *log.Logger

	// Now is the clock used for drag-end float restarts. Default: time.Now.
	Now func() time.Time
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
		o.Viewport = DefaultViewport
	}
	if o.Activator == nil {
		o.Activator = tile.NopActivator{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Workspace is a single desktop session. It is safe for concurrent use.
type Workspace struct {
	id     uuid.UUID
	cat    *catalog.Catalog
	opts   Options
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	vp          geometry.Viewport
	layout      geometry.Result
	placements  map[string]geometry.Placement
	order       []string
	controllers map[string]*tile.Controller
	active      string
	follow      *follower.Follower
	pending     func() error
	closed      bool
}

// New mounts a workspace for cat and computes the initial layout.
func New(cat *catalog.Catalog, opts Options) *Workspace {
	opts.SetDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	w := &Workspace{
		id:          uuid.New(),
		cat:         cat,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		placements:  make(map[string]geometry.Placement, cat.Len()),
		order:       make([]string, 0, cat.Len()),
		controllers: make(map[string]*tile.Controller, cat.Len()),
		follow:      follower.New(follower.ForPointer(opts.Pointer), opts.Follower...),
	}
	w.logger = opts.Logger.With("session", w.id.String()[:8])

	h := host{w}
	act := deferredActivator{w}
	for i, t := range cat.Tiles() {
		w.order = append(w.order, t.ID)
		w.controllers[t.ID] = tile.NewController(t, i, geometry.Placement{ID: t.ID}, h, act)
	}

	w.mu.Lock()
	w.recomputeLocked(opts.Viewport)
	w.mu.Unlock()
	return w
}

// SessionID returns the random id of this session.
func (w *Workspace) SessionID() string { return w.id.String() }

// Catalog returns the catalog the workspace was mounted with.
func (w *Workspace) Catalog() *catalog.Catalog { return w.cat }

// Viewport returns the viewport of the last recompute.
func (w *Workspace) Viewport() geometry.Viewport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vp
}

// Layout returns the result of the last recompute. Drags are not reflected;
// use Placements for the live positions.
func (w *Workspace) Layout() geometry.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layout
}

// Resize recomputes every placement for vp, discarding manual drags, even
// when vp equals the current viewport.
func (w *Workspace) Resize(vp geometry.Viewport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.recomputeLocked(vp)
}

func (w *Workspace) recomputeLocked(vp geometry.Viewport) {
	start := time.Now()
	w.vp = vp
	w.layout = geometry.Compute(w.cat.Items(), vp, &w.opts.Layout)
	for _, p := range w.layout.Placements {
		w.placements[p.ID] = p
		w.controllers[p.ID].SetBase(p)
	}
	elapsed := time.Since(start)

	w.logger.Debug("layout computed", "viewport", vp, "breakpoint", w.layout.Breakpoint, "mode", w.layout.Mode, "tiles", len(w.layout.Placements))
	observability.Layout().OnLayout(w.ctx, w.id.String(), w.layout.Mode.String(), len(w.layout.Placements), elapsed)
}

// Placement returns the stored placement of id.
func (w *Workspace) Placement(id string) (geometry.Placement, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.placements[id]
	return p, ok
}

// Placements returns every stored placement in catalog order.
func (w *Workspace) Placements() []geometry.Placement {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]geometry.Placement, 0, len(w.order))
	for _, t := range w.cat.Tiles() {
		out = append(out, w.placements[t.ID])
	}
	return out
}

// Controller returns the controller of id for inspection. Drive interactions
// through the workspace so they are serialized.
func (w *Workspace) Controller(id string) (*tile.Controller, bool) {
	c, ok := w.controllers[id]
	return c, ok
}

// Close stops the follower loop and detaches the workspace. Further
// interactions are ignored.
func (w *Workspace) Close() {
	w.mu.Lock()
	w.closed = true
	w.active = ""
	w.mu.Unlock()

	w.cancel()
	w.follow.Stop()
	w.logger.Debug("workspace closed")
}

func (w *Workspace) tileNotFound(id string) error {
	return perrors.New(perrors.ErrCodeTileNotFound, "no tile %q", id)
}

// sortedOrderLocked returns ids from bottom to top.
func (w *Workspace) sortedOrderLocked() []string {
	ids := append([]string(nil), w.order...)
	sort.SliceStable(ids, func(i, j int) bool {
		return w.zIndexLocked(ids[i]) < w.zIndexLocked(ids[j])
	})
	return ids
}
