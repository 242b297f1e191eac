package hittest

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// EdgeHit identifies a position on a line or polyline segment, used to
// insert a vertex there. Point is the projection of the pick point
// onto the segment and InsertIndex is the vertex index the new vertex
// would take.
type EdgeHit struct {
	Entity       entity.Entity
	SegmentIndex int
	InsertIndex  int
	Point        geometry.Point2D
}

// EdgeAt returns the topmost line or polyline edge within tolPx pixels
// of the screen point. Other entity kinds do not accept vertex
// insertion and are skipped.
func EdgeAt(sc *scene.Scene, vt transform.ViewTransform, screen geometry.Point2D, tolPx float64) (EdgeHit, bool) {
	if sc == nil {
		return EdgeHit{}, false
	}
	if tolPx <= 0 {
		tolPx = DefaultTolerancePx
	}
	world := vt.ScreenToWorld(screen)
	tol := vt.ScreenToWorldDistance(tolPx)

	es := sc.Entities()
	for i := len(es) - 1; i >= 0; i-- {
		e := es[i]
		switch e.EntityKind() {
		case entity.KindLine, entity.KindPolyline:
		default:
			continue
		}
		if !pickable(sc, e) {
			continue
		}
		if !e.Bounds().Expand(tol).Contains(world) {
			continue
		}
		if hit, ok := nearestSegment(e, world, tol); ok {
			return hit, true
		}
	}
	return EdgeHit{}, false
}

// nearestSegment finds the closest outline segment of a single entity
// within tolerance. When the pick lands near a shared vertex, the
// closer of the two adjacent segments wins.
func nearestSegment(e entity.Entity, world geometry.Point2D, tol float64) (EdgeHit, bool) {
	best := EdgeHit{Entity: e, SegmentIndex: -1}
	bestDist := tol

	for i, s := range e.OutlineSegments() {
		point, _ := geometry.ClosestPointOnSegment(world, s.A, s.B)
		dist := world.Distance(point)
		if dist <= bestDist {
			bestDist = dist
			best.SegmentIndex = i
			best.InsertIndex = i + 1
			best.Point = point
		}
	}
	return best, best.SegmentIndex >= 0
}
