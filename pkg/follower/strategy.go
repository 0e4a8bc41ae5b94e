package follower

import (
	"math"

	"github.com/jackparrish/deskfolio/pkg/geometry"
)

// DefaultLerpFactor is the fraction of the remaining distance covered per frame.
const DefaultLerpFactor = 0.2

// snapEpsilon ends a lerp once the follower is within a hundredth of a pixel.
const snapEpsilon = 0.01

// Strategy decides how the follower approaches its target.
type Strategy interface {
	// Step returns the next position given the current one and the target.
	Step(current, target geometry.Point) geometry.Point

	// Smooth reports whether positions trail the target across frames.
	Smooth() bool
}

// Lerp covers Factor of the remaining distance every frame.
type Lerp struct {
	Factor float64
}

func (l Lerp) Step(current, target geometry.Point) geometry.Point {
	factor := l.Factor
	if factor <= 0 || factor > 1 {
		factor = DefaultLerpFactor
	}
	d := target.Sub(current)
	if math.Abs(d.X) < snapEpsilon && math.Abs(d.Y) < snapEpsilon {
		return target
	}
	return geometry.Point{X: current.X + d.X*factor, Y: current.Y + d.Y*factor}
}

func (Lerp) Smooth() bool { return true }

// Snap jumps to the target immediately.
type Snap struct{}

func (Snap) Step(_, target geometry.Point) geometry.Point { return target }

func (Snap) Smooth() bool { return false }

// Pointer is the precision class of the input device.
type Pointer int

const (
	Fine Pointer = iota
	Coarse
)

func (p Pointer) String() string {
	if p == Coarse {
		return "coarse"
	}
	return "fine"
}

// ForPointer returns the strategy suited to p.
func ForPointer(p Pointer) Strategy {
	if p == Coarse {
		return Snap{}
	}
	return Lerp{Factor: DefaultLerpFactor}
}

// ParsePointer maps the CSS media feature values "fine" and "coarse".
// Anything else is treated as fine.
func ParsePointer(s string) Pointer {
	if s == "coarse" {
		return Coarse
	}
	return Fine
}
