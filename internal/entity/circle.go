package entity

import (
	"fmt"
	"math"

	"draft-editor/pkg/geometry"
)

// Circle is a full circle defined by center and radius.
type Circle struct {
	ID     string           `json:"id"`
	Center geometry.Point2D `json:"center"`
	Radius float64          `json:"radius"`
	Style  Style            `json:"style"`
}

// NewCircle creates a circle with a fresh ID and default style.
func NewCircle(center geometry.Point2D, radius float64) *Circle {
	return &Circle{ID: NewID(), Center: center, Radius: radius, Style: DefaultStyle()}
}

func (c *Circle) EntityID() string   { return c.ID }
func (c *Circle) EntityKind() Kind   { return KindCircle }
func (c *Circle) EntityStyle() Style { return c.Style }
func (c *Circle) SetStyle(s Style)   { c.Style = s }

// Bounds returns the square enclosing the circle.
func (c *Circle) Bounds() geometry.Rect {
	return geometry.NewRect(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
}

// HitTest returns true if p is within tolerance of the circle outline.
// The interior does not count as a hit.
func (c *Circle) HitTest(p geometry.Point2D, tolerance float64) bool {
	return math.Abs(p.Distance(c.Center)-c.Radius) <= tolerance
}

// OutlineSegments returns the circle linearized as a closed polygon.
func (c *Circle) OutlineSegments() []geometry.Segment {
	segments := make([]geometry.Segment, arcSegments)
	prev := geometry.PointOnCircle(c.Center, c.Radius, 0)
	for i := 1; i <= arcSegments; i++ {
		angle := float64(i) * 2 * math.Pi / arcSegments
		next := geometry.PointOnCircle(c.Center, c.Radius, angle)
		segments[i-1] = geometry.Segment{A: prev, B: next}
		prev = next
	}
	return segments
}

// Translate moves the center by delta.
func (c *Circle) Translate(delta geometry.Point2D) {
	c.Center = c.Center.Add(delta)
}

// Clone returns a deep copy.
func (c *Circle) Clone() Entity {
	cp := *c
	return &cp
}

// Validate reports non-finite geometry or a non-positive radius.
func (c *Circle) Validate() error {
	if err := validatePoint("circle center", c.Center); err != nil {
		return err
	}
	if math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("circle radius is not finite (%v)", c.Radius)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("circle radius must be positive, got %v", c.Radius)
	}
	return nil
}
