// Package hittest resolves pointer positions against scene entities.
// Pick tolerances are defined in screen pixels and converted to world
// units through the view transform, so picking feels identical at any
// zoom level.
package hittest

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Pick tolerances in screen pixels. AutoCloseFactor widens the vertex
// pick radius when deciding whether a dragged endpoint closes an open
// polyline.
const (
	DefaultTolerancePx = 6.0
	GripTolerancePx    = 8.0
	AutoCloseFactor    = 3.0
)

// pickable filters out entities that cannot be hit: invisible ones,
// ones on hidden layers and ones with broken geometry.
func pickable(sc *scene.Scene, e entity.Entity) bool {
	st := e.EntityStyle()
	if !st.Visible || !sc.IsLayerVisible(st.Layer) {
		return false
	}
	return e.Validate() == nil
}

// EntityAt returns the topmost entity within tolPx pixels of the
// screen point. Ties go to the most recently inserted entity.
func EntityAt(sc *scene.Scene, vt transform.ViewTransform, screen geometry.Point2D, tolPx float64) (entity.Entity, bool) {
	if sc == nil || sc.Len() == 0 {
		return nil, false
	}
	if tolPx <= 0 {
		tolPx = DefaultTolerancePx
	}
	world := vt.ScreenToWorld(screen)
	tol := vt.ScreenToWorldDistance(tolPx)

	es := sc.Entities()
	for i := len(es) - 1; i >= 0; i-- {
		e := es[i]
		if !pickable(sc, e) {
			continue
		}
		if !e.Bounds().Expand(tol).Contains(world) {
			continue
		}
		if e.HitTest(world, tol) {
			return e, true
		}
	}
	return nil, false
}

// EntitiesInRect returns the entities selected by a marquee rectangle
// in world coordinates, bottom to top. A window pick (crossing=false)
// requires full containment; a crossing pick also takes entities whose
// outline intersects the rectangle.
func EntitiesInRect(sc *scene.Scene, r geometry.Rect, crossing bool) []entity.Entity {
	if sc == nil {
		return nil
	}
	r = r.Normalized()

	var hits []entity.Entity
	for _, e := range sc.Entities() {
		if !pickable(sc, e) {
			continue
		}
		if r.ContainsRect(e.Bounds()) {
			hits = append(hits, e)
			continue
		}
		if crossing && outlineIntersectsRect(e, r) {
			hits = append(hits, e)
		}
	}
	return hits
}

func outlineIntersectsRect(e entity.Entity, r geometry.Rect) bool {
	if !e.Bounds().Intersects(r) {
		return false
	}
	for _, s := range e.OutlineSegments() {
		if geometry.SegmentIntersectsRect(s.A, s.B, r) {
			return true
		}
	}
	return false
}

// EntitiesInPolygon returns the entities selected by a lasso polygon
// in world coordinates, bottom to top. A window pick requires the
// whole outline inside the polygon; a crossing pick also takes
// entities whose outline crosses the polygon boundary.
func EntitiesInPolygon(sc *scene.Scene, polygon []geometry.Point2D, crossing bool) []entity.Entity {
	if sc == nil || len(polygon) < 3 {
		return nil
	}

	var hits []entity.Entity
	for _, e := range sc.Entities() {
		if !pickable(sc, e) {
			continue
		}
		if crossing {
			if outlineTouchesPolygon(e, polygon) {
				hits = append(hits, e)
			}
		} else if outlineInsidePolygon(e, polygon) {
			hits = append(hits, e)
		}
	}
	return hits
}

func outlineInsidePolygon(e entity.Entity, polygon []geometry.Point2D) bool {
	for _, s := range e.OutlineSegments() {
		if !geometry.PointInPolygon(s.A, polygon) || !geometry.PointInPolygon(s.B, polygon) {
			return false
		}
		if geometry.PolygonIntersectsSegment(polygon, s.A, s.B) {
			return false
		}
	}
	return len(e.OutlineSegments()) > 0
}

func outlineTouchesPolygon(e entity.Entity, polygon []geometry.Point2D) bool {
	for _, s := range e.OutlineSegments() {
		if geometry.PointInPolygon(s.A, polygon) || geometry.PointInPolygon(s.B, polygon) {
			return true
		}
		if geometry.PolygonIntersectsSegment(polygon, s.A, s.B) {
			return true
		}
	}
	return false
}
