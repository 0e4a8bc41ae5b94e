package follower

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// manualClock hands out tickers whose ticks the test sends by hand.
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) last() *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[len(c.tickers)-1]
}

type manualTicker struct {
	c        chan time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.stopOnce.Do(func() { close(t.stopped) }) }

// frames starts f and returns a function that advances one frame and waits
// for its result.
func frames(t *testing.T, f *Follower, clock *manualClock) func() geometry.Point {
	t.Helper()
	out := make(chan geometry.Point)
	f.Start(context.Background(), func(p geometry.Point) { out <- p })
	ticker := clock.last()
	return func() geometry.Point {
		ticker.c <- time.Time{}
		return <-out
	}
}

func TestLerpTrailsTarget(t *testing.T) {
	clock := &manualClock{}
	f := New(Lerp{Factor: 0.2}, WithClock(clock))
	defer f.Stop()

	f.Move(geometry.Point{X: 0, Y: 0})
	f.Move(geometry.Point{X: 100, Y: 50})
	if got := f.Position(); got != (geometry.Point{}) {
		t.Fatalf("lerp moved before a frame: %+v", got)
	}

	next := frames(t, f, clock)
	p := next()
	if math.Abs(p.X-20) > 1e-9 || math.Abs(p.Y-10) > 1e-9 {
		t.Errorf("frame 1 = %+v, want (20, 10)", p)
	}
	p = next()
	if math.Abs(p.X-36) > 1e-9 || math.Abs(p.Y-18) > 1e-9 {
		t.Errorf("frame 2 = %+v, want (36, 18)", p)
	}

	for i := 0; i < 200; i++ {
		p = next()
	}
	if p != (geometry.Point{X: 100, Y: 50}) {
		t.Errorf("lerp did not settle on target: %+v", p)
	}
}

func TestFirstMovePlacesDirectly(t *testing.T) {
	f := New(Lerp{Factor: 0.2})
	f.Move(geometry.Point{X: 300, Y: 400})
	if got := f.Position(); got != (geometry.Point{X: 300, Y: 400}) {
		t.Errorf("first move = %+v, want direct placement", got)
	}
}

func TestSnapFollowsEveryMove(t *testing.T) {
	f := New(Snap{})
	for _, p := range []geometry.Point{{X: 1, Y: 2}, {X: 300, Y: 10}, {X: -5, Y: 7}} {
		f.Move(p)
		if got := f.Position(); got != p {
			t.Errorf("snap position = %+v, want %+v", got, p)
		}
	}
}

func TestStartStopLifecycle(t *testing.T) {
	clock := &manualClock{}
	f := New(nil, WithClock(clock))
	if f.Running() {
		t.Fatal("new follower should not be running")
	}

	f.Start(context.Background(), nil)
	if !f.Running() {
		t.Fatal("follower should be running after Start")
	}
	first := clock.last()

	f.Start(context.Background(), nil)
	if clock.last() != first {
		t.Error("second Start should not launch another loop")
	}

	f.Stop()
	if f.Running() {
		t.Error("follower should not be running after Stop")
	}
	select {
	case <-first.stopped:
	default:
		t.Error("Stop should stop the ticker before returning")
	}

	f.Stop()

	f.Start(context.Background(), nil)
	if !f.Running() {
		t.Error("follower should restart")
	}
	f.Stop()
}

func TestParentContextCancelsLoop(t *testing.T) {
	clock := &manualClock{}
	f := New(Snap{}, WithClock(clock))
	ctx, cancel := context.WithCancel(context.Background())
	f.Start(ctx, nil)
	ticker := clock.last()

	cancel()
	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit after context cancellation")
	}
	deadline := time.Now().Add(time.Second)
	for f.Running() {
		if time.Now().After(deadline) {
			t.Fatal("Running should report false once the loop exits")
		}
		time.Sleep(time.Millisecond)
	}
	f.Stop()
}

func TestRealClockTicks(t *testing.T) {
	f := New(Lerp{}, WithInterval(time.Millisecond))
	f.Move(geometry.Point{})
	f.Move(geometry.Point{X: 10})

	ticked := make(chan struct{}, 1)
	f.Start(context.Background(), func(geometry.Point) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})
	defer f.Stop()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestForPointer(t *testing.T) {
	if _, ok := ForPointer(Coarse).(Snap); !ok {
		t.Error("coarse pointer should snap")
	}
	if l, ok := ForPointer(Fine).(Lerp); !ok || l.Factor != DefaultLerpFactor {
		t.Error("fine pointer should lerp with the default factor")
	}
	if ParsePointer("coarse") != Coarse || ParsePointer("fine") != Fine || ParsePointer("") != Fine {
		t.Error("ParsePointer mapping")
	}
}

func TestLerpFactorDefaults(t *testing.T) {
	p := Lerp{Factor: 7}.Step(geometry.Point{}, geometry.Point{X: 10})
	if math.Abs(p.X-2) > 1e-9 {
		t.Errorf("out-of-range factor step = %+v, want default 0.2", p)
	}
}
