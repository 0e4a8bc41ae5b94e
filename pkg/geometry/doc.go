// Package geometry computes where desktop tiles sit on screen.
//
// # Overview
//
// The engine is a set of pure functions: given the tiles to place (an id and
// a [Shape] each) and the current [Viewport], [Compute] returns one
// [Placement] per tile. Nothing here touches I/O, clocks or global state, so
// identical inputs always yield identical placements.
//
// # Breakpoints and Footprints
//
// Viewports up to [MobileMaxWidth] pixels wide are classified as [Mobile].
// Mobile layouts use smaller footprints (see [Footprint]), a smaller margin and
// a negative spacing buffer that lets tiles overlap slightly.
//
// # Modes
//
// [Scatter] derives every coordinate from [Seeded], a sine-based fractional
// generator keyed by the tile's ordinal. Candidates that collide with an
// already placed tile are re-seeded up to [DefaultMaxAttempts] times, after
// which the last candidate is accepted even if it still collides.
//
// [Anchors] maps each ordinal onto a designer-authored [Anchor] expressed as
// fractions of the usable region. Both modes produce the same [Result] shape.
//
// # Bounds
//
// Every placement lies within [UsableBounds]: the viewport minus the margin on
// the left, right and bottom, minus the header band on top, minus the tile's
// own footprint. [Bounds.Clamp] enforces the same region after a drag.
//
// Rotation is cosmetic: collision checks use unrotated boxes.
package geometry
