package geometry

// Anchor is a designer-authored position expressed as fractions of the usable
// region, plus a fixed rotation in degrees.
type Anchor struct {
	FX       float64 `toml:"fx" json:"fx"`
	FY       float64 `toml:"fy" json:"fy"`
	Rotation float64 `toml:"rotation" json:"rotation"`
}

// DefaultAnchors is the composed arrangement for the first eight tiles.
var DefaultAnchors = []Anchor{
	{FX: 0.08, FY: 0.10, Rotation: -3},
	{FX: 0.32, FY: 0.04, Rotation: 2},
	{FX: 0.56, FY: 0.16, Rotation: -1.5},
	{FX: 0.84, FY: 0.06, Rotation: 3},
	{FX: 0.14, FY: 0.64, Rotation: 1.5},
	{FX: 0.44, FY: 0.72, Rotation: -2.5},
	{FX: 0.72, FY: 0.58, Rotation: 2},
	{FX: 0.94, FY: 0.88, Rotation: -1},
}

// FallbackAnchor centers tiles whose ordinal has no anchor of its own.
var FallbackAnchor = Anchor{FX: 0.5, FY: 0.5}

func (o *Options) anchorFor(i int) Anchor {
	if i < len(o.Anchors) {
		return o.Anchors[i]
	}
	return *o.Fallback
}

// place resolves a onto the usable region of it within vp. Fractions outside
// [0, 1] are clamped so the bounds invariant still holds.
func (a Anchor) place(it Item, vp Viewport) Placement {
	b := UsableBounds(vp, Footprint(it.Shape, Classify(vp)))
	fx, fy := clamp(a.FX, 0, 1), clamp(a.FY, 0, 1)
	return Placement{
		ID:       it.ID,
		X:        b.MinX + fx*(b.MaxX-b.MinX),
		Y:        b.MinY + fy*(b.MaxY-b.MinY),
		Rotation: a.Rotation,
	}
}
