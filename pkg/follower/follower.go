// Package follower implements the companion indicator that trails the
// pointer while a desktop tile is engaged.
//
// A [Follower] is built with one [Strategy], chosen from the input device:
// [Lerp] eases toward the cursor once per frame for precise pointers, [Snap]
// jumps straight to each touch point for coarse ones. The per-frame loop is
// an explicit task: [Follower.Start] launches it and [Follower.Stop] cancels
// it and waits until the goroutine has exited.
package follower

import (
	"context"
	"sync"
	"time"

	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// DefaultInterval is one animation frame at roughly 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Follower tracks a target position and animates toward it. It is safe for
// concurrent use.
type Follower struct {
	strategy Strategy
	clock    Clock
	interval time.Duration

	mu     sync.Mutex
	pos    geometry.Point
	target geometry.Point
	placed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Follower.
type Option func(*Follower)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(f *Follower) { f.clock = c }
}

// WithInterval sets the frame interval. Default: DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(f *Follower) {
		if d > 0 {
			f.interval = d
		}
	}
}

// New creates a stopped follower. A nil strategy defaults to Lerp.
func New(strategy Strategy, opts ...Option) *Follower {
	if strategy == nil {
		strategy = Lerp{Factor: DefaultLerpFactor}
	}
	f := &Follower{
		strategy: strategy,
		clock:    realClock{},
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Strategy returns the motion strategy chosen at construction.
func (f *Follower) Strategy() Strategy { return f.strategy }

// Move sets the target. The very first move places the follower directly so
// it does not sweep in from the origin; after that the strategy decides.
func (f *Follower) Move(p geometry.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.target = p
	if !f.placed || !f.strategy.Smooth() {
		f.pos = p
		f.placed = true
	}
}

// Position returns the current follower position.
func (f *Follower) Position() geometry.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos
}

// Target returns the last position passed to Move.
func (f *Follower) Target() geometry.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Start launches the frame loop. onFrame, if non-nil, receives the position
// after every frame; it runs on the loop goroutine and must not call Stop.
// Starting a running follower does nothing. The loop also ends when ctx is
// cancelled.
func (f *Follower) Start(ctx context.Context, onFrame func(geometry.Point)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.runningLocked() {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	f.cancel = cancel
	f.done = done

	ticker := f.clock.NewTicker(f.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C():
				p := f.step()
				if onFrame != nil {
					onFrame(p)
				}
			}
		}
	}()
}

// Stop cancels the frame loop and blocks until it has exited. Stopping a
// stopped follower does nothing.
func (f *Follower) Stop() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the frame loop is alive.
func (f *Follower) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runningLocked()
}

func (f *Follower) runningLocked() bool {
	if f.done == nil {
		return false
	}
	select {
	case <-f.done:
		return false
	default:
		return true
	}
}

func (f *Follower) step() geometry.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = f.strategy.Step(f.pos, f.target)
	return f.pos
}
