// Package transform maps between world and screen coordinates. World
// space has Y growing upward; screen space has Y growing downward with
// the origin at the top-left of the viewport.
package transform

import (
	"math"

	"draft-editor/pkg/geometry"
)

// Zoom limits and step shared by every zoom entry point.
const (
	MinScale = 0.01
	MaxScale = 1000.0
	ZoomStep = 1.25

	// FitMargin leaves a little air around the content when fitting
	// the view to the scene bounds.
	FitMargin = 0.95
)

// Viewport describes the drawable area in logical pixels plus the
// device pixel ratio used to size backing rasters.
type Viewport struct {
	W   float64
	H   float64
	DPR float64
}

// Center returns the viewport center in screen coordinates.
func (v Viewport) Center() geometry.Point2D {
	return geometry.Point2D{X: v.W / 2, Y: v.H / 2}
}

// ViewTransform converts world coordinates to screen coordinates:
//
//	sx = wx*Scale + OffsetX
//	sy = -wy*Scale + OffsetY
//
// The negated Y term flips the axis so world +Y points up on screen.
// ViewTransform is a value; operations return adjusted copies.
type ViewTransform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity returns the unit transform: world origin at the screen
// origin, one world unit per pixel.
func Identity() ViewTransform {
	return ViewTransform{Scale: 1}
}

// Centered returns the unit transform with the world origin placed at
// the viewport center.
func Centered(vp Viewport) ViewTransform {
	c := vp.Center()
	return ViewTransform{Scale: 1, OffsetX: c.X, OffsetY: c.Y}
}

// WorldToScreen converts a world point to screen coordinates.
func (t ViewTransform) WorldToScreen(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*t.Scale + t.OffsetX,
		Y: -p.Y*t.Scale + t.OffsetY,
	}
}

// ScreenToWorld converts a screen point back to world coordinates.
func (t ViewTransform) ScreenToWorld(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - t.OffsetX) / t.Scale,
		Y: (t.OffsetY - p.Y) / t.Scale,
	}
}

// WorldToScreenDistance converts a world-space length to pixels.
func (t ViewTransform) WorldToScreenDistance(d float64) float64 {
	return d * t.Scale
}

// ScreenToWorldDistance converts a pixel length to world space. Hit
// tolerances are defined in pixels and pass through here, which keeps
// them independent of the zoom level.
func (t ViewTransform) ScreenToWorldDistance(d float64) float64 {
	return d / t.Scale
}

// Clamp limits the scale to [MinScale, MaxScale].
func (t ViewTransform) Clamp() ViewTransform {
	if t.Scale < MinScale {
		t.Scale = MinScale
	} else if t.Scale > MaxScale {
		t.Scale = MaxScale
	}
	return t
}

// Pan shifts the view by a screen-space delta.
func (t ViewTransform) Pan(dx, dy float64) ViewTransform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}

// ZoomAt scales by factor while keeping the world point under the
// given screen position fixed.
func (t ViewTransform) ZoomAt(pivot geometry.Point2D, factor float64) ViewTransform {
	w := t.ScreenToWorld(pivot)
	nt := t
	nt.Scale = t.Scale * factor
	nt = nt.Clamp()
	nt.OffsetX = pivot.X - w.X*nt.Scale
	nt.OffsetY = pivot.Y + w.Y*nt.Scale
	return nt
}

// ZoomIn zooms in one step around the pivot.
func (t ViewTransform) ZoomIn(pivot geometry.Point2D) ViewTransform {
	return t.ZoomAt(pivot, ZoomStep)
}

// ZoomOut zooms out one step around the pivot.
func (t ViewTransform) ZoomOut(pivot geometry.Point2D) ViewTransform {
	return t.ZoomAt(pivot, 1/ZoomStep)
}

// FitToView frames the given world bounds in the viewport with a small
// margin. Degenerate bounds keep the current scale and center on the
// bounds center.
func (t ViewTransform) FitToView(bounds geometry.Rect, vp Viewport) ViewTransform {
	bounds = bounds.Normalized()
	nt := t
	if bounds.Width > 0 || bounds.Height > 0 {
		zoomX := math.Inf(1)
		zoomY := math.Inf(1)
		if bounds.Width > 0 {
			zoomX = vp.W / bounds.Width
		}
		if bounds.Height > 0 {
			zoomY = vp.H / bounds.Height
		}
		nt.Scale = math.Min(zoomX, zoomY) * FitMargin
		nt = nt.Clamp()
	}

	center := bounds.Center()
	vc := vp.Center()
	nt.OffsetX = vc.X - center.X*nt.Scale
	nt.OffsetY = vc.Y + center.Y*nt.Scale
	return nt
}

// AlignHalfPixel snaps a screen coordinate to the nearest half-pixel
// so one-pixel strokes land on a single pixel row instead of bleeding
// across two.
func AlignHalfPixel(v float64) float64 {
	return math.Floor(v) + 0.5
}
