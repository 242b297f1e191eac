package grips

import (
	"fmt"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/pkg/geometry"
)

// State is the grip interaction state owned by the editor. Committed
// and Cancelled only last until the event that produced them is fully
// dispatched, then the editor returns to Idle.
type State int

const (
	StateIdle State = iota
	StateHover
	StateDragging
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHover:
		return "hover"
	case StateDragging:
		return "dragging"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// coincidentEps decides when a dragged endpoint counts as exactly on
// top of the opposite endpoint during auto-close.
const coincidentEps = 1e-9

// DragSession tracks one grip drag. It snapshots the affected
// entities at drag start and rebuilds the preview from snapshot plus
// total delta on every update, so intermediate moves never accumulate
// floating-point error and cancelling discards everything.
type DragSession struct {
	grips     []Grip
	order     []string
	snapshots map[string]entity.Entity
	origins   map[Grip]geometry.Point2D
	base      geometry.Point2D
	delta     geometry.Point2D
	preview   []entity.Entity
}

// NewDragSession starts a drag on the primary grip plus any extra
// grips that move with it. With more than one grip only vertex grips
// are allowed, since edge-midpoint drags change topology and their
// indices would shift under each other.
func NewDragSession(sc *scene.Scene, primary Grip, extra []Grip) (*DragSession, error) {
	s := &DragSession{
		snapshots: make(map[string]entity.Entity),
		origins:   make(map[Grip]geometry.Point2D),
	}
	seen := map[Grip]bool{primary: true}
	s.grips = append(s.grips, primary)
	for _, g := range extra {
		if seen[g] {
			continue
		}
		seen[g] = true
		s.grips = append(s.grips, g)
	}
	if len(s.grips) > 1 {
		for _, g := range s.grips {
			if g.Kind != KindVertex {
				return nil, fmt.Errorf("multi-grip drag supports vertex grips only, got %s", g.Kind)
			}
		}
	}

	for _, g := range s.grips {
		if _, ok := s.snapshots[g.EntityID]; !ok {
			e, found := sc.Get(g.EntityID)
			if !found {
				return nil, fmt.Errorf("drag: entity %s not in scene", g.EntityID)
			}
			s.snapshots[g.EntityID] = e.Clone()
			s.order = append(s.order, g.EntityID)
		}
		p, ok := PointOf(s.snapshots[g.EntityID], g)
		if !ok {
			return nil, fmt.Errorf("drag: %w", badGrip(g, s.snapshots[g.EntityID]))
		}
		s.origins[g] = p
	}
	s.base = s.origins[primary]
	s.preview = s.rebuild(geometry.Point2D{})
	return s, nil
}

// Base returns the primary grip's position at drag start. Snap uses
// it as the reference point for perpendicular candidates.
func (s *DragSession) Base() geometry.Point2D {
	return s.base
}

// Delta returns the current total world-space delta.
func (s *DragSession) Delta() geometry.Point2D {
	return s.delta
}

// Grips returns the grips taking part in the drag.
func (s *DragSession) Grips() []Grip {
	return s.grips
}

// DraggedPoints returns the current world positions of the dragged
// grips, each origin shifted by the cumulative delta. Hosts use them
// to mark handles hot when a topology change renumbered the grips.
func (s *DragSession) DraggedPoints() []geometry.Point2D {
	pts := make([]geometry.Point2D, 0, len(s.grips))
	for _, g := range s.grips {
		pts = append(pts, s.origins[g].Add(s.delta))
	}
	return pts
}

// Update moves the drag to the given world position, usually the
// snapped cursor. Every grip gets the same delta, measured from the
// primary grip's start position.
func (s *DragSession) Update(world geometry.Point2D) {
	s.delta = world.Sub(s.base)
	s.preview = s.rebuild(s.delta)
}

// Preview returns the reshaped entities for overlay rendering. The
// scene itself stays untouched until commit.
func (s *DragSession) Preview() []entity.Entity {
	return s.preview
}

func (s *DragSession) rebuild(delta geometry.Point2D) []entity.Entity {
	out := make([]entity.Entity, 0, len(s.order))
	for _, id := range s.order {
		cur := s.snapshots[id].Clone()
		for _, g := range s.grips {
			if g.EntityID != id {
				continue
			}
			next, err := Apply(cur, g, s.origins[g].Add(delta))
			if err != nil {
				continue
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out
}

// Commit finishes the drag and returns the before/after entity pairs
// for a replace command. It returns ok=false, leaving the scene
// alone, when the net delta is zero or the result would be invalid.
//
// Dragging the free end of an open polyline to within closeTol of the
// opposite end closes it into a polygon instead of a plain move. The
// dragged vertex keeps its dropped position; it is only removed when
// it lands exactly on the opposite end, so the ring never holds a
// duplicate coincident vertex.
func (s *DragSession) Commit(closeTol float64) (before, after []entity.Entity, ok bool) {
	if s.delta.X == 0 && s.delta.Y == 0 {
		return nil, nil, false
	}
	after = s.rebuild(s.delta)
	if closed, did := s.autoClose(after, closeTol); did {
		after = closed
	}
	for _, e := range after {
		if e.Validate() != nil {
			return nil, nil, false
		}
	}
	for _, id := range s.order {
		before = append(before, s.snapshots[id])
	}
	return before, after, true
}

// autoClose rewrites a single-vertex drag on an open polyline end
// into a close when it lands near the opposite end.
func (s *DragSession) autoClose(after []entity.Entity, closeTol float64) ([]entity.Entity, bool) {
	if closeTol <= 0 || len(s.grips) != 1 || len(after) != 1 {
		return nil, false
	}
	g := s.grips[0]
	if g.Kind != KindVertex {
		return nil, false
	}
	pl, isPolyline := after[0].(*entity.Polyline)
	if !isPolyline || pl.Closed || len(pl.Vertices) < 3 {
		return nil, false
	}
	last := len(pl.Vertices) - 1
	var other geometry.Point2D
	switch g.Index {
	case 0:
		other = pl.Vertices[last]
	case last:
		other = pl.Vertices[0]
	default:
		return nil, false
	}
	dragged := pl.Vertices[g.Index]
	if dragged.Distance(other) > closeTol {
		return nil, false
	}
	closed := pl.Clone().(*entity.Polyline)
	closed.Closed = true
	if dragged.Distance(other) <= coincidentEps && len(closed.Vertices) > 3 {
		closed.RemoveVertex(g.Index)
	}
	return []entity.Entity{closed}, true
}

// Cancel discards the preview. The snapshots were never written to
// the scene, so there is nothing to roll back.
func (s *DragSession) Cancel() {
	s.preview = nil
}
