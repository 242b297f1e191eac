// Package grips derives the control points of selected entities and
// applies grip drags back onto them.
package grips

import (
	"fmt"
	"math"

	"draft-editor/internal/entity"
	"draft-editor/internal/hittest"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Kind distinguishes the two grip families. Vertex grips sit on a
// defining point of the entity and move it; edge-midpoint grips sit
// halfway along a drawn edge and reshape the entity around it.
type Kind string

const (
	KindVertex       Kind = "vertex"
	KindEdgeMidpoint Kind = "edgeMidpoint"
)

// Grip identifies one control point. It stays valid only as long as
// the entity keeps its topology; re-derive after every scene change.
//
// Index meaning per entity kind:
//
//	line       vertex 0/1 = start/end, edgeMidpoint 0 = segment middle
//	circle     vertex 0 = center, edgeMidpoint 0..3 = E/N/W/S quadrant
//	arc        vertex 0 = center, 1/2 = start/end point, edgeMidpoint 0 = mid-sweep
//	rectangle  vertex 0..3 = corners clockwise, edgeMidpoint 0..3 = edge middles
//	polyline   vertex i = vertex i, edgeMidpoint i = segment i middle
type Grip struct {
	EntityID string
	Kind     Kind
	Index    int
}

// Handle pairs a grip with its current world position.
type Handle struct {
	Grip  Grip
	Point geometry.Point2D
}

// HandlesFor returns the grips of an entity, vertex grips first so
// they win distance ties during picking.
func HandlesFor(e entity.Entity) []Handle {
	id := e.EntityID()
	switch v := e.(type) {
	case *entity.Line:
		return []Handle{
			{Grip{id, KindVertex, 0}, v.Start},
			{Grip{id, KindVertex, 1}, v.End},
			{Grip{id, KindEdgeMidpoint, 0}, v.Start.Midpoint(v.End)},
		}
	case *entity.Circle:
		handles := []Handle{{Grip{id, KindVertex, 0}, v.Center}}
		for i := 0; i < 4; i++ {
			p := geometry.PointOnCircle(v.Center, v.Radius, float64(i)*math.Pi/2)
			handles = append(handles, Handle{Grip{id, KindEdgeMidpoint, i}, p})
		}
		return handles
	case *entity.Arc:
		return []Handle{
			{Grip{id, KindVertex, 0}, v.Center},
			{Grip{id, KindVertex, 1}, v.StartPoint()},
			{Grip{id, KindVertex, 2}, v.EndPoint()},
			{Grip{id, KindEdgeMidpoint, 0}, v.MidPoint()},
		}
	case *entity.Rectangle:
		corners := v.Rect.Normalized().Corners()
		handles := make([]Handle, 0, 8)
		for i := 0; i < 4; i++ {
			handles = append(handles, Handle{Grip{id, KindVertex, i}, corners[i]})
		}
		for i := 0; i < 4; i++ {
			mid := corners[i].Midpoint(corners[(i+1)%4])
			handles = append(handles, Handle{Grip{id, KindEdgeMidpoint, i}, mid})
		}
		return handles
	case *entity.Polyline:
		handles := make([]Handle, 0, len(v.Vertices)+v.SegmentCount())
		for i, vp := range v.Vertices {
			handles = append(handles, Handle{Grip{id, KindVertex, i}, vp})
		}
		for i := 0; i < v.SegmentCount(); i++ {
			a, b := v.Segment(i)
			handles = append(handles, Handle{Grip{id, KindEdgeMidpoint, i}, a.Midpoint(b)})
		}
		return handles
	default:
		return nil
	}
}

// PointOf returns the current world position of a grip on e. The
// second result is false when the grip does not exist on this entity.
func PointOf(e entity.Entity, g Grip) (geometry.Point2D, bool) {
	for _, h := range HandlesFor(e) {
		if h.Grip.Kind == g.Kind && h.Grip.Index == g.Index {
			return h.Point, true
		}
	}
	return geometry.Point2D{}, false
}

// At picks the grip nearest to the screen cursor among the entities
// with the given ids, within hittest.GripTolerancePx. Vertex grips
// beat edge-midpoint grips at equal distance.
func At(sc *scene.Scene, vt transform.ViewTransform, cursor geometry.Point2D, ids []string) (Grip, bool) {
	best := Grip{}
	bestDist := math.Inf(1)
	found := false
	for _, id := range ids {
		e, ok := sc.Get(id)
		if !ok {
			continue
		}
		for _, h := range HandlesFor(e) {
			d := vt.WorldToScreen(h.Point).Distance(cursor)
			if d <= hittest.GripTolerancePx && d < bestDist {
				best = h.Grip
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}

// Apply returns a copy of e reshaped so that grip g lands at p. The
// input entity is never mutated. Dragging the edge midpoint of a line
// turns it into a three-vertex polyline with the same id; dragging a
// polyline edge midpoint inserts a vertex there.
func Apply(e entity.Entity, g Grip, p geometry.Point2D) (entity.Entity, error) {
	if g.EntityID != e.EntityID() {
		return nil, fmt.Errorf("grip belongs to entity %s, not %s", g.EntityID, e.EntityID())
	}
	switch v := e.(type) {
	case *entity.Line:
		return applyLine(v, g, p)
	case *entity.Circle:
		return applyCircle(v, g, p)
	case *entity.Arc:
		return applyArc(v, g, p)
	case *entity.Rectangle:
		return applyRectangle(v, g, p)
	case *entity.Polyline:
		return applyPolyline(v, g, p)
	default:
		return nil, fmt.Errorf("entity kind %q has no grips", e.EntityKind())
	}
}

func applyLine(l *entity.Line, g Grip, p geometry.Point2D) (entity.Entity, error) {
	switch {
	case g.Kind == KindVertex && g.Index == 0:
		c := l.Clone().(*entity.Line)
		c.Start = p
		return c, nil
	case g.Kind == KindVertex && g.Index == 1:
		c := l.Clone().(*entity.Line)
		c.End = p
		return c, nil
	case g.Kind == KindEdgeMidpoint && g.Index == 0:
		return lineToPolyline(l, p), nil
	}
	return nil, badGrip(g, l)
}

func applyCircle(c *entity.Circle, g Grip, p geometry.Point2D) (entity.Entity, error) {
	switch {
	case g.Kind == KindVertex && g.Index == 0:
		cp := c.Clone().(*entity.Circle)
		cp.Center = p
		return cp, nil
	case g.Kind == KindEdgeMidpoint && g.Index >= 0 && g.Index < 4:
		cp := c.Clone().(*entity.Circle)
		cp.Radius = p.Distance(c.Center)
		return cp, nil
	}
	return nil, badGrip(g, c)
}

func applyArc(a *entity.Arc, g Grip, p geometry.Point2D) (entity.Entity, error) {
	cp := a.Clone().(*entity.Arc)
	switch {
	case g.Kind == KindVertex && g.Index == 0:
		cp.Center = p
	case g.Kind == KindVertex && g.Index == 1:
		cp.StartAngle = geometry.AngleOf(a.Center, p)
	case g.Kind == KindVertex && g.Index == 2:
		cp.EndAngle = geometry.AngleOf(a.Center, p)
	case g.Kind == KindEdgeMidpoint && g.Index == 0:
		cp.Radius = p.Distance(a.Center)
	default:
		return nil, badGrip(g, a)
	}
	return cp, nil
}

func applyRectangle(r *entity.Rectangle, g Grip, p geometry.Point2D) (entity.Entity, error) {
	n := r.Rect.Normalized()
	cp := r.Clone().(*entity.Rectangle)
	switch {
	case g.Kind == KindVertex && g.Index >= 0 && g.Index < 4:
		opposite := n.Corners()[(g.Index+2)%4]
		cp.Rect = geometry.NewRectFromPoints(p, opposite)
	case g.Kind == KindEdgeMidpoint && g.Index >= 0 && g.Index < 4:
		switch g.Index {
		case 0: // y-min edge
			n.Height = n.Y + n.Height - p.Y
			n.Y = p.Y
		case 1: // x-max edge
			n.Width = p.X - n.X
		case 2: // y-max edge
			n.Height = p.Y - n.Y
		case 3: // x-min edge
			n.Width = n.X + n.Width - p.X
			n.X = p.X
		}
		cp.Rect = n.Normalized()
	default:
		return nil, badGrip(g, r)
	}
	return cp, nil
}

func applyPolyline(pl *entity.Polyline, g Grip, p geometry.Point2D) (entity.Entity, error) {
	cp := pl.Clone().(*entity.Polyline)
	switch {
	case g.Kind == KindVertex && g.Index >= 0 && g.Index < len(pl.Vertices):
		cp.Vertices[g.Index] = p
	case g.Kind == KindEdgeMidpoint && g.Index >= 0 && g.Index < pl.SegmentCount():
		// Inserting after the segment start keeps ring order, also for
		// the closing segment where the insert lands at the tail.
		cp.InsertVertex(g.Index+1, p)
	default:
		return nil, badGrip(g, pl)
	}
	return cp, nil
}

func badGrip(g Grip, e entity.Entity) error {
	return fmt.Errorf("no %s grip %d on %s", g.Kind, g.Index, e.EntityKind())
}
