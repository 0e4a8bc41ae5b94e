package geometry

import (
	"fmt"
	"math"
)

// Layout defaults.
const (
	// DefaultMaxAttempts caps the re-seeding of colliding scatter candidates.
	DefaultMaxAttempts = 50

	// DesktopSpacing is the minimum gap kept between tiles on desktop.
	DesktopSpacing = 20.0

	// MobileSpacing lets mobile tiles overlap by up to 30px.
	MobileSpacing = -30.0

	// ScatterSeedBase offsets tile ordinals before they reach [Seeded].
	ScatterSeedBase = 98765.0

	// MaxRotation is the half-range of the rotation jitter in degrees.
	MaxRotation = 4.0
)

// Mode selects how placements are generated.
type Mode int

const (
	// Scatter places tiles pseudo-randomly with collision avoidance.
	Scatter Mode = iota
	// Anchors places tiles on fixed normalized anchors.
	Anchors
)

func (m Mode) String() string {
	if m == Anchors {
		return "anchors"
	}
	return "scatter"
}

// ParseMode converts s into a Mode. The empty string selects Scatter.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "scatter":
		return Scatter, nil
	case "anchors":
		return Anchors, nil
	}
	return Scatter, fmt.Errorf("invalid layout mode: %q (must be one of: scatter, anchors)", s)
}

// Item is one tile to be placed.
type Item struct {
	ID    string
	Shape Shape
}

// Options configures [Compute]. The zero value is usable.
type Options struct {
	// Mode selects scatter or anchor placement. Default: Scatter.
	Mode Mode

	// MaxAttempts bounds collision retries per tile. Default: 50.
	MaxAttempts int

	// Spacing overrides the breakpoint spacing buffer when non-nil.
	Spacing *float64

	// Anchors are indexed by tile ordinal in Anchors mode. Default: DefaultAnchors.
	Anchors []Anchor

	// Fallback is used for ordinals beyond len(Anchors). Default: FallbackAnchor.
	Fallback *Anchor
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if len(o.Anchors) == 0 {
		o.Anchors = DefaultAnchors
	}
	if o.Fallback == nil {
		fb := FallbackAnchor
		o.Fallback = &fb
	}
}

// SpacingFor returns the spacing buffer used at bp.
func (o *Options) SpacingFor(bp Breakpoint) float64 {
	if o.Spacing != nil {
		return *o.Spacing
	}
	if bp == Mobile {
		return MobileSpacing
	}
	return DesktopSpacing
}

// Result is the output of [Compute].
type Result struct {
	Viewport   Viewport
	Breakpoint Breakpoint
	Mode       Mode

	// Placements holds one entry per input item, in input order.
	Placements []Placement

	// Attempts[i] is the number of candidates tried for item i (1..MaxAttempts).
	Attempts []int
}

// ByID indexes the placements by tile id.
func (r Result) ByID() map[string]Placement {
	m := make(map[string]Placement, len(r.Placements))
	for _, p := range r.Placements {
		m[p.ID] = p
	}
	return m
}

// Compute places every item within vp. Pass nil opts for defaults.
//
// The work is O(n²) in the number of items because each scatter candidate is
// checked against every tile placed before it. Catalogs are expected to hold
// a few dozen tiles at most.
func Compute(items []Item, vp Viewport, opts *Options) Result {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.SetDefaults()

	bp := Classify(vp)
	res := Result{
		Viewport:   vp,
		Breakpoint: bp,
		Mode:       o.Mode,
		Placements: make([]Placement, 0, len(items)),
		Attempts:   make([]int, 0, len(items)),
	}

	switch o.Mode {
	case Anchors:
		for i, it := range items {
			a := o.anchorFor(i)
			res.Placements = append(res.Placements, a.place(it, vp))
			res.Attempts = append(res.Attempts, 1)
		}
	default:
		placeScattered(&res, items, vp, &o)
	}
	return res
}

func placeScattered(res *Result, items []Item, vp Viewport, o *Options) {
	spacing := o.SpacingFor(res.Breakpoint)
	boxes := make([]Rect, 0, len(items))

	for i, it := range items {
		size := Footprint(it.Shape, res.Breakpoint)

		var p Placement
		attempts := 0
		for {
			p = scatterCandidate(it, size, vp, float64(i+attempts))
			attempts++
			if !collides(p.Rect(size), boxes, spacing) || attempts >= o.MaxAttempts {
				break
			}
		}

		boxes = append(boxes, p.Rect(size))
		res.Placements = append(res.Placements, p)
		res.Attempts = append(res.Attempts, attempts)
	}
}

func collides(r Rect, placed []Rect, spacing float64) bool {
	for _, other := range placed {
		if r.Overlaps(other, spacing) {
			return true
		}
	}
	return false
}

// scatterCandidate derives one candidate position from ordinal.
// Desktop tiles gather in a centered column at most 810px wide; mobile tiles
// spread over 90% of the usable width.
func scatterCandidate(it Item, size Size, vp Viewport, ordinal float64) Placement {
	bp := Classify(vp)
	mobile := bp == Mobile
	margin := Margin(bp)
	seed := ordinal + ScatterSeedBase

	availableWidth := vp.Width - margin*2
	availableHeight := vp.Height - HeaderHeight - margin - 2*HeaderPadding

	randomX := Seeded(seed * 2)
	randomY := Seeded(seed * 3)
	cluster := Seeded(seed * 7)

	containerWidth := math.Min(810, availableWidth)
	spreadHeight := availableHeight * 0.5
	clusterX, clusterY := 60.0, 50.0
	if mobile {
		containerWidth = availableWidth * 0.9
		spreadHeight = availableHeight * 0.7
		clusterX, clusterY = 40, 40
	}

	containerX := (vp.Width - containerWidth) / 2
	offsetY := (availableHeight - spreadHeight) / 2

	baseX := containerX + randomX*containerWidth
	baseY := HeaderBand() + offsetY*0.3 + randomY*spreadHeight

	x := baseX + (cluster-0.5)*clusterX - size.W/2
	y := baseY + (cluster-0.5)*clusterY - size.H/2
	x, y = UsableBounds(vp, size).Clamp(x, y)

	return Placement{
		ID:       it.ID,
		X:        x,
		Y:        y,
		Rotation: (Seeded(seed) - 0.5) * 2 * MaxRotation,
	}
}
