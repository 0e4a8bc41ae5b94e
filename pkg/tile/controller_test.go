package tile

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jackparrish/deskfolio/pkg/catalog"
	"github.com/jackparrish/deskfolio/pkg/geometry"
)

type fakeHost struct {
	bounds  geometry.Bounds
	events  []string
	dropped map[string]geometry.Point
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		bounds:  geometry.Bounds{MinX: 24, MaxX: 1000, MinY: 92, MaxY: 600},
		dropped: map[string]geometry.Point{},
	}
}

func (h *fakeHost) OnEngage(id string)    { h.events = append(h.events, "engage:"+id) }
func (h *fakeHost) OnDisengage(id string) { h.events = append(h.events, "disengage:"+id) }
func (h *fakeHost) OnDragEnd(id string, x, y float64) {
	h.events = append(h.events, "drop:"+id)
	h.dropped[id] = geometry.Point{X: x, Y: y}
}
func (h *fakeHost) Bounds(string) geometry.Bounds { return h.bounds }

type recordingActivator struct{ calls []string }

func (a *recordingActivator) Navigate(p string) error {
	a.calls = append(a.calls, "navigate "+p)
	return nil
}
func (a *recordingActivator) OpenExternal(u string) error {
	a.calls = append(a.calls, "open "+u)
	return nil
}
func (a *recordingActivator) ComposeEmail(addr string) error {
	a.calls = append(a.calls, "email "+addr)
	return nil
}

var caseTile = catalog.Tile{
	ID:     "seenit",
	Label:  "SEENIT",
	Action: catalog.Navigate("/case/seenit"),
	Shape:  geometry.Portrait,
	Visual: catalog.Visual{Kind: catalog.VisualImage, Src: "/x.jpg"},
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestController() (*Controller, *fakeHost, *recordingActivator) {
	h := newFakeHost()
	a := &recordingActivator{}
	c := NewController(caseTile, 0, geometry.Placement{ID: "seenit", X: 300, Y: 200}, h, a)
	return c, h, a
}

func TestHoverTransitions(t *testing.T) {
	c, h, _ := newTestController()

	c.PointerEnter()
	if c.State() != Hovered {
		t.Fatalf("state = %v, want hovered", c.State())
	}
	c.PointerEnter()
	c.PointerLeave()
	if c.State() != Idle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	c.PointerLeave()

	want := []string{"engage:seenit", "disengage:seenit"}
	if fmt.Sprint(h.events) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

func TestDragFollowsPointerWithoutInertia(t *testing.T) {
	c, h, _ := newTestController()

	c.DragStart(geometry.Point{X: 10, Y: 10})
	c.DragMove(geometry.Point{X: 60, Y: 30})
	if got := c.Position(epoch); got.X != 350 || got.Y != 220 {
		t.Errorf("mid-drag position = %+v, want (350, 220)", got)
	}

	p := c.DragEnd(geometry.Point{X: 110, Y: 40}, epoch)
	if p.X != 400 || p.Y != 230 {
		t.Errorf("dropped at %+v, want (400, 230)", p)
	}
	if c.State() != Idle {
		t.Errorf("state after drop = %v, want idle", c.State())
	}
	if h.dropped["seenit"] != (geometry.Point{X: 400, Y: 230}) {
		t.Errorf("host saw drop at %+v", h.dropped["seenit"])
	}

	// Float restarts from neutral phase, so the first frame sits at the drop point.
	if got := c.Position(epoch); got.Y != 230 {
		t.Errorf("position at restart = %+v, want y=230", got)
	}
}

func TestDragEndClampsArbitraryDeltas(t *testing.T) {
	deltas := []geometry.Point{
		{X: -1e6, Y: -1e6},
		{X: 1e6, Y: 1e6},
		{X: -5000, Y: 3000},
		{X: 0, Y: -250},
		{X: 12345.6, Y: -0.5},
	}
	for _, d := range deltas {
		c, h, _ := newTestController()
		c.DragStart(geometry.Point{})
		c.DragMove(d)
		p := c.DragEnd(d, epoch)
		if !h.bounds.Contains(p.X, p.Y) {
			t.Errorf("delta %+v dropped at (%v, %v), outside %+v", d, p.X, p.Y, h.bounds)
		}
	}
}

func TestDragEndUsesLiveBounds(t *testing.T) {
	c, h, _ := newTestController()
	c.DragStart(geometry.Point{})

	// The workspace shrinks mid-drag.
	h.bounds = geometry.Bounds{MinX: 16, MaxX: 200, MinY: 92, MaxY: 300}
	p := c.DragEnd(geometry.Point{X: 500, Y: 500}, epoch)
	if p.X != 200 || p.Y != 300 {
		t.Errorf("dropped at (%v, %v), want clamp to shrunken bounds (200, 300)", p.X, p.Y)
	}
}

func TestDragEndReportsBeforeDisengage(t *testing.T) {
	c, h, _ := newTestController()
	c.DragStart(geometry.Point{})
	c.DragEnd(geometry.Point{X: 5, Y: 5}, epoch)

	want := []string{"engage:seenit", "drop:seenit", "disengage:seenit"}
	if fmt.Sprint(h.events) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

func TestClickAfterDragIsSuppressed(t *testing.T) {
	c, _, a := newTestController()

	// Even a zero-distance drag counts.
	c.DragStart(geometry.Point{X: 1, Y: 1})
	c.DragEnd(geometry.Point{X: 1, Y: 1}, epoch)

	ran, err := c.Click()
	if err != nil || ran {
		t.Fatalf("click after drag: ran=%v err=%v", ran, err)
	}
	if len(a.calls) != 0 {
		t.Fatalf("activator called: %v", a.calls)
	}

	ran, _ = c.Click()
	if !ran || len(a.calls) != 1 || a.calls[0] != "navigate /case/seenit" {
		t.Errorf("second click: ran=%v calls=%v", ran, a.calls)
	}
}

func TestKeyActivation(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"enter", true},
		{"Enter", true},
		{" ", true},
		{"space", true},
		{"Tab", false},
		{"a", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, _, a := newTestController()
			c.DragStart(geometry.Point{})
			c.DragEnd(geometry.Point{}, epoch)

			ran, err := c.Key(tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if ran != tt.want || (len(a.calls) == 1) != tt.want {
				t.Errorf("Key(%q) ran=%v calls=%v", tt.key, ran, a.calls)
			}
		})
	}
}

func TestActivateDispatch(t *testing.T) {
	tests := []struct {
		action catalog.Action
		want   string
	}{
		{catalog.Navigate("/case/seenit"), "navigate /case/seenit"},
		{catalog.OpenExternal("https://example.com"), "open https://example.com"},
		{catalog.ComposeEmail("hi@example.com"), "email mailto:hi@example.com"},
	}
	for _, tt := range tests {
		a := &recordingActivator{}
		if err := Activate(a, tt.action); err != nil {
			t.Fatal(err)
		}
		if len(a.calls) != 1 || a.calls[0] != tt.want {
			t.Errorf("Activate(%v) calls = %v, want %q", tt.action, a.calls, tt.want)
		}
	}
	if err := Activate(&recordingActivator{}, catalog.Action{Kind: "teleport"}); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestCancelKeepsBase(t *testing.T) {
	c, h, _ := newTestController()
	c.DragStart(geometry.Point{})
	c.DragMove(geometry.Point{X: 400, Y: 400})
	c.Cancel()

	if c.State() != Idle || c.Base().X != 300 || c.Base().Y != 200 {
		t.Errorf("after cancel: state=%v base=%+v", c.State(), c.Base())
	}
	if _, dropped := h.dropped["seenit"]; dropped {
		t.Error("cancel must not report a drop")
	}
}

func TestClickAfterCancelledDragActivates(t *testing.T) {
	c, _, a := newTestController()
	c.DragStart(geometry.Point{X: 10, Y: 10})
	c.DragMove(geometry.Point{X: 60, Y: 60})
	c.Cancel()

	ran, err := c.Click()
	if err != nil || !ran {
		t.Fatalf("click after cancel: ran=%v err=%v", ran, err)
	}
	if len(a.calls) != 1 || a.calls[0] != "navigate /case/seenit" {
		t.Errorf("calls = %v", a.calls)
	}
}

func TestSetBaseKeepsID(t *testing.T) {
	c, _, _ := newTestController()
	c.SetBase(geometry.Placement{ID: "other", X: 1, Y: 2, Rotation: 3})
	if b := c.Base(); b.ID != "seenit" || b.X != 1 || b.Rotation != 3 {
		t.Errorf("base = %+v", b)
	}
}

func TestFloatIsSuspendedWhileDragging(t *testing.T) {
	c, _, _ := newTestController()
	c.DragStart(geometry.Point{})
	for i := 0; i < 20; i++ {
		now := epoch.Add(time.Duration(i) * 250 * time.Millisecond)
		if p := c.Position(now); p.Y != 200 {
			t.Fatalf("position at %v = %+v, want unchanged y", now, p)
		}
	}
}

func TestZeroTimeGivesRestingPosition(t *testing.T) {
	c, _, _ := newTestController()
	if p := c.Position(time.Time{}); p != c.Base() {
		t.Errorf("position = %+v, want base %+v", p, c.Base())
	}
}

func TestFloatParameters(t *testing.T) {
	seen := map[time.Duration]bool{}
	for i := 0; i < 10; i++ {
		f := NewFloat(i)
		if f.Period < 3200*time.Millisecond || f.Period > 5200*time.Millisecond {
			t.Errorf("ordinal %d period = %v", i, f.Period)
		}
		if f.Amplitude < 2 || f.Amplitude > 5 {
			t.Errorf("ordinal %d amplitude = %v", i, f.Amplitude)
		}
		if f.Phase < 0 || f.Phase >= 2*math.Pi {
			t.Errorf("ordinal %d phase = %v", i, f.Phase)
		}
		seen[f.Period] = true
	}
	if len(seen) < 2 {
		t.Error("tiles float in lockstep")
	}
}

func TestFloatOffsetBounded(t *testing.T) {
	f := NewFloat(3)
	f.Restart(epoch)
	for i := 0; i < 100; i++ {
		off := f.Offset(epoch.Add(time.Duration(i) * 97 * time.Millisecond))
		if math.Abs(off) > f.Amplitude+1e-9 {
			t.Fatalf("offset %v exceeds amplitude %v", off, f.Amplitude)
		}
	}
	if f.Offset(epoch) != 0 {
		t.Errorf("offset at restart = %v, want 0", f.Offset(epoch))
	}
}
