package grips

import (
	"fmt"

	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

func lineToPolyline(l *entity.Line, mid geometry.Point2D) *entity.Polyline {
	return &entity.Polyline{
		ID:       l.ID,
		Vertices: []geometry.Point2D{l.Start, mid, l.End},
		Closed:   false,
		Style:    l.Style,
	}
}

// InsertOnEdge turns an edge click into a vertex insertion. A line
// becomes a three-vertex polyline with the same id; a polyline gains
// one vertex at insertIndex. The returned grip addresses the new
// vertex so a drag can pick it up directly. Inserting on top of an
// existing vertex is refused, the caller drops the gesture and the
// entity stays as it was.
func InsertOnEdge(e entity.Entity, insertIndex int, at geometry.Point2D) (entity.Entity, Grip, error) {
	switch v := e.(type) {
	case *entity.Line:
		if insertIndex != 1 {
			return nil, Grip{}, fmt.Errorf("insert on line: index must be 1, got %d", insertIndex)
		}
		if at.Distance(v.Start) <= coincidentEps || at.Distance(v.End) <= coincidentEps {
			return nil, Grip{}, fmt.Errorf("insert on line: point coincides with an endpoint")
		}
		return lineToPolyline(v, at), Grip{v.ID, KindVertex, 1}, nil
	case *entity.Polyline:
		if insertIndex < 1 || insertIndex > len(v.Vertices) {
			return nil, Grip{}, fmt.Errorf("insert on polyline: index %d out of range", insertIndex)
		}
		prev := v.Vertices[insertIndex-1]
		next := v.Vertices[insertIndex%len(v.Vertices)]
		if at.Distance(prev) <= coincidentEps || at.Distance(next) <= coincidentEps {
			return nil, Grip{}, fmt.Errorf("insert on polyline: point coincides with a vertex")
		}
		cp := v.Clone().(*entity.Polyline)
		cp.InsertVertex(insertIndex, at)
		return cp, Grip{v.ID, KindVertex, insertIndex}, nil
	default:
		return nil, Grip{}, fmt.Errorf("cannot insert a vertex on a %s", e.EntityKind())
	}
}

// BreakAtEdge re-opens a closed polyline by removing the segment the
// given edge-midpoint grip sits on. The vertex ring is rotated so the
// removed segment's end vertex leads, which keeps the remaining edges
// in drawing order. Vertex count is unchanged.
func BreakAtEdge(pl *entity.Polyline, segmentIndex int) (*entity.Polyline, error) {
	if !pl.Closed {
		return nil, fmt.Errorf("break: polyline is already open")
	}
	n := len(pl.Vertices)
	if segmentIndex < 0 || segmentIndex >= pl.SegmentCount() {
		return nil, fmt.Errorf("break: segment %d out of range", segmentIndex)
	}
	cp := pl.Clone().(*entity.Polyline)
	cp.Closed = false
	start := (segmentIndex + 1) % n
	rotated := make([]geometry.Point2D, 0, n)
	rotated = append(rotated, pl.Vertices[start:]...)
	rotated = append(rotated, pl.Vertices[:start]...)
	cp.Vertices = rotated
	return cp, nil
}
