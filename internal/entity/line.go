package entity

import (
	"draft-editor/pkg/geometry"
)

// Line is a straight segment between two points.
type Line struct {
	ID    string           `json:"id"`
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`
	Style Style            `json:"style"`
}

// NewLine creates a line with a fresh ID and default style.
func NewLine(start, end geometry.Point2D) *Line {
	return &Line{ID: NewID(), Start: start, End: end, Style: DefaultStyle()}
}

func (l *Line) EntityID() string   { return l.ID }
func (l *Line) EntityKind() Kind   { return KindLine }
func (l *Line) EntityStyle() Style { return l.Style }
func (l *Line) SetStyle(s Style)   { l.Style = s }

// Bounds returns the bounding box of the two endpoints.
func (l *Line) Bounds() geometry.Rect {
	return geometry.NewRectFromPoints(l.Start, l.End)
}

// HitTest returns true if p is within tolerance of the segment.
func (l *Line) HitTest(p geometry.Point2D, tolerance float64) bool {
	return geometry.PointToSegmentDistance(p, l.Start, l.End) <= tolerance
}

// OutlineSegments returns the single segment.
func (l *Line) OutlineSegments() []geometry.Segment {
	return []geometry.Segment{{A: l.Start, B: l.End}}
}

// Translate moves both endpoints by delta.
func (l *Line) Translate(delta geometry.Point2D) {
	l.Start = l.Start.Add(delta)
	l.End = l.End.Add(delta)
}

// Clone returns a deep copy.
func (l *Line) Clone() Entity {
	c := *l
	return &c
}

// Validate reports non-finite endpoints.
func (l *Line) Validate() error {
	if err := validatePoint("line start", l.Start); err != nil {
		return err
	}
	return validatePoint("line end", l.End)
}
