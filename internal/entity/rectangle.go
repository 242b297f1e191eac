package entity

import (
	"fmt"
	"math"

	"draft-editor/pkg/geometry"
)

// Rectangle is an axis-aligned rectangle outline.
type Rectangle struct {
	ID    string        `json:"id"`
	Rect  geometry.Rect `json:"rect"`
	Style Style         `json:"style"`
}

// NewRectangle creates a rectangle with a fresh ID and default style.
// The rect is normalized so width and height are non-negative.
func NewRectangle(rect geometry.Rect) *Rectangle {
	return &Rectangle{ID: NewID(), Rect: rect.Normalized(), Style: DefaultStyle()}
}

func (r *Rectangle) EntityID() string   { return r.ID }
func (r *Rectangle) EntityKind() Kind   { return KindRectangle }
func (r *Rectangle) EntityStyle() Style { return r.Style }
func (r *Rectangle) SetStyle(s Style)   { r.Style = s }

// Bounds returns the rectangle itself.
func (r *Rectangle) Bounds() geometry.Rect {
	return r.Rect.Normalized()
}

// HitTest returns true if p is within tolerance of any of the four
// edges. The interior does not count as a hit.
func (r *Rectangle) HitTest(p geometry.Point2D, tolerance float64) bool {
	corners := r.Rect.Normalized().Corners()
	for i := 0; i < 4; i++ {
		if geometry.PointToSegmentDistance(p, corners[i], corners[(i+1)%4]) <= tolerance {
			return true
		}
	}
	return false
}

// OutlineSegments returns the four edges.
func (r *Rectangle) OutlineSegments() []geometry.Segment {
	corners := r.Rect.Normalized().Corners()
	segments := make([]geometry.Segment, 4)
	for i := 0; i < 4; i++ {
		segments[i] = geometry.Segment{A: corners[i], B: corners[(i+1)%4]}
	}
	return segments
}

// Translate moves the origin by delta.
func (r *Rectangle) Translate(delta geometry.Point2D) {
	r.Rect.X += delta.X
	r.Rect.Y += delta.Y
}

// Clone returns a deep copy.
func (r *Rectangle) Clone() Entity {
	c := *r
	return &c
}

// Validate reports non-finite or degenerate geometry.
func (r *Rectangle) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"x", r.Rect.X},
		{"y", r.Rect.Y},
		{"width", r.Rect.Width},
		{"height", r.Rect.Height},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("rectangle %s is not finite (%v)", v.name, v.value)
		}
	}
	n := r.Rect.Normalized()
	if n.Width == 0 && n.Height == 0 {
		return fmt.Errorf("rectangle has zero size")
	}
	return nil
}
