package geometry

import (
	"fmt"
	"math"
)

// MobileMaxWidth is the widest viewport still classified as mobile.
const MobileMaxWidth = 880.0

// Header band metrics. The band is excluded from the usable region.
const (
	HeaderHeight  = 72.0
	HeaderPadding = 20.0
)

// Responsive margins applied to the left, right and bottom edges.
const (
	DesktopMargin = 24.0
	MobileMargin  = 16.0
)

// mobileScale shrinks desktop footprints on mobile viewports.
const mobileScale = 0.75

// Viewport is the visible area of the workspace, in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// String returns "WxH".
func (v Viewport) String() string {
	return fmt.Sprintf("%.0fx%.0f", v.Width, v.Height)
}

// Breakpoint is the responsive class of a viewport.
type Breakpoint int

const (
	Desktop Breakpoint = iota
	Mobile
)

func (b Breakpoint) String() string {
	if b == Mobile {
		return "mobile"
	}
	return "desktop"
}

// Classify returns the breakpoint for vp.
func Classify(vp Viewport) Breakpoint {
	if vp.Width <= MobileMaxWidth {
		return Mobile
	}
	return Desktop
}

// Margin returns the edge margin for bp.
func Margin(bp Breakpoint) float64 {
	if bp == Mobile {
		return MobileMargin
	}
	return DesktopMargin
}

// HeaderBand returns the height excluded at the top of every viewport.
func HeaderBand() float64 { return HeaderHeight + HeaderPadding }

// Shape is the aspect class of a tile.
type Shape string

const (
	Square    Shape = "square"
	Portrait  Shape = "portrait"
	Landscape Shape = "landscape"
)

// ParseShape converts s into a Shape.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(s); sh {
	case Square, Portrait, Landscape:
		return sh, nil
	}
	return "", fmt.Errorf("unknown shape %q (must be square, portrait or landscape)", s)
}

// Size is a width and height in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

var desktopFootprints = map[Shape]Size{
	Square:    {W: 120, H: 120},
	Portrait:  {W: 120, H: 216},
	Landscape: {W: 216, H: 120},
}

// Footprint returns the intrinsic size of shape at bp.
// Unknown shapes fall back to the square footprint.
func Footprint(shape Shape, bp Breakpoint) Size {
	s, ok := desktopFootprints[shape]
	if !ok {
		s = desktopFootprints[Square]
	}
	if bp == Mobile {
		s.W *= mobileScale
		s.H *= mobileScale
	}
	return s
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether r and o intersect once o is expanded by spacing on
// every side. A negative spacing tolerates that much overlap.
func (r Rect) Overlaps(o Rect, spacing float64) bool {
	return !(r.Right()+spacing < o.X ||
		r.X > o.Right()+spacing ||
		r.Bottom()+spacing < o.Y ||
		r.Y > o.Bottom()+spacing)
}

// Bounds is the closed range of legal top-left coordinates for one footprint.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// UsableBounds returns the region in which a tile of the given size may be
// placed within vp. When the viewport is too small for the footprint, the
// maximum collapses onto the minimum.
func UsableBounds(vp Viewport, size Size) Bounds {
	margin := Margin(Classify(vp))
	b := Bounds{
		MinX: margin,
		MaxX: vp.Width - margin - size.W,
		MinY: HeaderBand(),
		MaxY: vp.Height - margin - size.H,
	}
	b.MaxX = math.Max(b.MinX, b.MaxX)
	b.MaxY = math.Max(b.MinY, b.MaxY)
	return b
}

// Clamp moves (x, y) to the nearest point inside b.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return clamp(x, b.MinX, b.MaxX), clamp(y, b.MinY, b.MaxY)
}

// Contains reports whether (x, y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Placement is a tile's on-screen position and cosmetic rotation.
type Placement struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Rect returns the unrotated box of p for a tile of the given size.
func (p Placement) Rect(size Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: size.W, H: size.H}
}

// Point is a pointer position or offset in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
