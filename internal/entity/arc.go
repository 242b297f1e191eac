package entity

import (
	"fmt"
	"math"

	"draft-editor/pkg/geometry"
)

// Arc is a circular arc swept counter-clockwise from StartAngle to
// EndAngle. Angles are in radians.
type Arc struct {
	ID         string           `json:"id"`
	Center     geometry.Point2D `json:"center"`
	Radius     float64          `json:"radius"`
	StartAngle float64          `json:"startAngle"`
	EndAngle   float64          `json:"endAngle"`
	Style      Style            `json:"style"`
}

// NewArc creates an arc with a fresh ID and default style.
func NewArc(center geometry.Point2D, radius, startAngle, endAngle float64) *Arc {
	return &Arc{
		ID:         NewID(),
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Style:      DefaultStyle(),
	}
}

func (a *Arc) EntityID() string   { return a.ID }
func (a *Arc) EntityKind() Kind   { return KindArc }
func (a *Arc) EntityStyle() Style { return a.Style }
func (a *Arc) SetStyle(s Style)   { a.Style = s }

// StartPoint returns the point at StartAngle on the arc.
func (a *Arc) StartPoint() geometry.Point2D {
	return geometry.PointOnCircle(a.Center, a.Radius, a.StartAngle)
}

// EndPoint returns the point at EndAngle on the arc.
func (a *Arc) EndPoint() geometry.Point2D {
	return geometry.PointOnCircle(a.Center, a.Radius, a.EndAngle)
}

// MidPoint returns the point halfway along the sweep.
func (a *Arc) MidPoint() geometry.Point2D {
	return geometry.PointOnCircle(a.Center, a.Radius, geometry.ArcMidAngle(a.StartAngle, a.EndAngle))
}

// Bounds returns the bounding box of the swept portion only, not the
// full circle: the endpoints plus any axis extreme the sweep crosses.
func (a *Arc) Bounds() geometry.Rect {
	points := []geometry.Point2D{a.StartPoint(), a.EndPoint()}
	for _, angle := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		if geometry.AngleOnArc(angle, a.StartAngle, a.EndAngle) {
			points = append(points, geometry.PointOnCircle(a.Center, a.Radius, angle))
		}
	}
	return geometry.BoundingBox(points)
}

// HitTest returns true if p is within tolerance of the swept outline.
func (a *Arc) HitTest(p geometry.Point2D, tolerance float64) bool {
	if math.Abs(p.Distance(a.Center)-a.Radius) > tolerance {
		return false
	}
	if geometry.AngleOnArc(geometry.AngleOf(a.Center, p), a.StartAngle, a.EndAngle) {
		return true
	}
	// Near an endpoint the angle test can just miss; check directly.
	return p.Distance(a.StartPoint()) <= tolerance || p.Distance(a.EndPoint()) <= tolerance
}

// OutlineSegments returns the sweep linearized as straight segments.
func (a *Arc) OutlineSegments() []geometry.Segment {
	sweep := geometry.ArcSweep(a.StartAngle, a.EndAngle)
	segments := make([]geometry.Segment, arcSegments)
	prev := a.StartPoint()
	for i := 1; i <= arcSegments; i++ {
		angle := a.StartAngle + sweep*float64(i)/arcSegments
		next := geometry.PointOnCircle(a.Center, a.Radius, angle)
		segments[i-1] = geometry.Segment{A: prev, B: next}
		prev = next
	}
	return segments
}

// Translate moves the center by delta.
func (a *Arc) Translate(delta geometry.Point2D) {
	a.Center = a.Center.Add(delta)
}

// Clone returns a deep copy.
func (a *Arc) Clone() Entity {
	c := *a
	return &c
}

// Validate reports non-finite geometry or a non-positive radius.
func (a *Arc) Validate() error {
	if err := validatePoint("arc center", a.Center); err != nil {
		return err
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"radius", a.Radius},
		{"start angle", a.StartAngle},
		{"end angle", a.EndAngle},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("arc %s is not finite (%v)", v.name, v.value)
		}
	}
	if a.Radius <= 0 {
		return fmt.Errorf("arc radius must be positive, got %v", a.Radius)
	}
	return nil
}
