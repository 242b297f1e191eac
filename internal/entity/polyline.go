package entity

import (
	"fmt"

	"draft-editor/pkg/geometry"
)

// Polyline is a chain of straight segments through an ordered vertex
// list. A closed polyline joins the last vertex back to the first
// without duplicating it.
type Polyline struct {
	ID       string             `json:"id"`
	Vertices []geometry.Point2D `json:"vertices"`
	Closed   bool               `json:"closed"`
	Style    Style              `json:"style"`
}

// NewPolyline creates a polyline with a fresh ID and default style.
// The vertex slice is copied.
func NewPolyline(vertices []geometry.Point2D, closed bool) *Polyline {
	vs := make([]geometry.Point2D, len(vertices))
	copy(vs, vertices)
	return &Polyline{ID: NewID(), Vertices: vs, Closed: closed, Style: DefaultStyle()}
}

func (p *Polyline) EntityID() string   { return p.ID }
func (p *Polyline) EntityKind() Kind   { return KindPolyline }
func (p *Polyline) EntityStyle() Style { return p.Style }
func (p *Polyline) SetStyle(s Style)   { p.Style = s }

// SegmentCount returns the number of drawn segments, including the
// closing segment for closed polylines.
func (p *Polyline) SegmentCount() int {
	if len(p.Vertices) < 2 {
		return 0
	}
	if p.Closed {
		return len(p.Vertices)
	}
	return len(p.Vertices) - 1
}

// Segment returns the endpoints of segment i. For a closed polyline
// the last segment joins the final vertex back to the first.
func (p *Polyline) Segment(i int) (geometry.Point2D, geometry.Point2D) {
	return p.Vertices[i], p.Vertices[(i+1)%len(p.Vertices)]
}

// InsertVertex inserts a vertex before index i, so the new vertex
// becomes Vertices[i]. i may equal len(Vertices) to append.
func (p *Polyline) InsertVertex(i int, v geometry.Point2D) {
	p.Vertices = append(p.Vertices, geometry.Point2D{})
	copy(p.Vertices[i+1:], p.Vertices[i:])
	p.Vertices[i] = v
}

// RemoveVertex removes the vertex at index i.
func (p *Polyline) RemoveVertex(i int) {
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

// Bounds returns the bounding box of all vertices.
func (p *Polyline) Bounds() geometry.Rect {
	return geometry.BoundingBox(p.Vertices)
}

// HitTest returns true if the point is within tolerance of any segment.
func (p *Polyline) HitTest(pt geometry.Point2D, tolerance float64) bool {
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.Segment(i)
		if geometry.PointToSegmentDistance(pt, a, b) <= tolerance {
			return true
		}
	}
	return false
}

// OutlineSegments returns the drawn segments, including the closing
// segment for closed polylines.
func (p *Polyline) OutlineSegments() []geometry.Segment {
	segments := make([]geometry.Segment, p.SegmentCount())
	for i := range segments {
		a, b := p.Segment(i)
		segments[i] = geometry.Segment{A: a, B: b}
	}
	return segments
}

// Translate moves every vertex by delta.
func (p *Polyline) Translate(delta geometry.Point2D) {
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Add(delta)
	}
}

// Clone returns a deep copy with its own vertex slice.
func (p *Polyline) Clone() Entity {
	c := *p
	c.Vertices = make([]geometry.Point2D, len(p.Vertices))
	copy(c.Vertices, p.Vertices)
	return &c
}

// Validate reports non-finite vertices or too few of them.
func (p *Polyline) Validate() error {
	if len(p.Vertices) < 2 {
		return fmt.Errorf("polyline needs at least 2 vertices, got %d", len(p.Vertices))
	}
	if p.Closed && len(p.Vertices) < 3 {
		return fmt.Errorf("closed polyline needs at least 3 vertices, got %d", len(p.Vertices))
	}
	for i, v := range p.Vertices {
		if err := validatePoint(fmt.Sprintf("polyline vertex %d", i), v); err != nil {
			return err
		}
	}
	return nil
}
