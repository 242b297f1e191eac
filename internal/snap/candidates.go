package snap

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

func endpointCandidates(nearby []entity.Entity) []candidate {
	var out []candidate
	for _, e := range nearby {
		id := e.EntityID()
		switch v := e.(type) {
		case *entity.Line:
			out = append(out, candidate{v.Start, id, ""}, candidate{v.End, id, ""})
		case *entity.Polyline:
			for _, p := range v.Vertices {
				out = append(out, candidate{p, id, ""})
			}
		case *entity.Arc:
			out = append(out, candidate{v.StartPoint(), id, ""}, candidate{v.EndPoint(), id, ""})
		case *entity.Rectangle:
			for _, p := range v.Rect.Normalized().Corners() {
				out = append(out, candidate{p, id, ""})
			}
		}
	}
	return out
}

func midpointCandidates(nearby []entity.Entity) []candidate {
	var out []candidate
	for _, e := range nearby {
		id := e.EntityID()
		switch v := e.(type) {
		case *entity.Line:
			out = append(out, candidate{v.Start.Midpoint(v.End), id, ""})
		case *entity.Polyline:
			for i := 0; i < v.SegmentCount(); i++ {
				a, b := v.Segment(i)
				out = append(out, candidate{a.Midpoint(b), id, ""})
			}
		case *entity.Arc:
			out = append(out, candidate{v.MidPoint(), id, ""})
		case *entity.Rectangle:
			for _, s := range v.OutlineSegments() {
				out = append(out, candidate{s.Midpoint(), id, ""})
			}
		}
	}
	return out
}

func centerCandidates(nearby []entity.Entity) []candidate {
	var out []candidate
	for _, e := range nearby {
		switch v := e.(type) {
		case *entity.Circle:
			out = append(out, candidate{v.Center, v.ID, ""})
		case *entity.Arc:
			out = append(out, candidate{v.Center, v.ID, ""})
		}
	}
	return out
}

// perpendicularCandidates projects the drag base point onto each
// nearby entity.
func perpendicularCandidates(nearby []entity.Entity, ref geometry.Point2D) []candidate {
	var out []candidate
	for _, e := range nearby {
		id := e.EntityID()
		switch v := e.(type) {
		case *entity.Circle:
			out = append(out, circleFeet(v.Center, v.Radius, ref, id, nil)...)
		case *entity.Arc:
			arc := v
			out = append(out, circleFeet(v.Center, v.Radius, ref, id, func(p geometry.Point2D) bool {
				return geometry.AngleOnArc(geometry.AngleOf(arc.Center, p), arc.StartAngle, arc.EndAngle)
			})...)
		default:
			for _, s := range e.OutlineSegments() {
				foot, _ := geometry.ClosestPointOnSegment(ref, s.A, s.B)
				out = append(out, candidate{foot, id, ""})
			}
		}
	}
	return out
}

// circleFeet returns the two points where the line through ref and the
// center crosses the circle. keep filters arc sweeps; nil keeps both.
func circleFeet(center geometry.Point2D, radius float64, ref geometry.Point2D, id string, keep func(geometry.Point2D) bool) []candidate {
	d := ref.Distance(center)
	if d == 0 {
		return nil
	}
	dir := ref.Sub(center).Scale(1 / d)

	var out []candidate
	for _, p := range []geometry.Point2D{
		center.Add(dir.Scale(radius)),
		center.Sub(dir.Scale(radius)),
	} {
		if keep == nil || keep(p) {
			out = append(out, candidate{p, id, ""})
		}
	}
	return out
}

// curve is an entity reduced to intersection-friendly form: a segment
// list for linear kinds, or an analytic circle for circles and arcs.
type curve struct {
	segments []geometry.Segment
	isCircle bool
	center   geometry.Point2D
	radius   float64
	isArc    bool
	start    float64
	end      float64
}

func curveOf(e entity.Entity) curve {
	switch v := e.(type) {
	case *entity.Circle:
		return curve{isCircle: true, center: v.Center, radius: v.Radius}
	case *entity.Arc:
		return curve{
			isCircle: true, isArc: true,
			center: v.Center, radius: v.Radius,
			start: v.StartAngle, end: v.EndAngle,
		}
	default:
		return curve{segments: e.OutlineSegments()}
	}
}

func (c curve) onSweep(p geometry.Point2D) bool {
	if !c.isArc {
		return true
	}
	return geometry.AngleOnArc(geometry.AngleOf(c.center, p), c.start, c.end)
}

// nearestIntersection intersects every nearby entity pair and picks
// the crossing closest to the cursor. Segments are pre-filtered by a
// bounding box around the cursor so large polylines cost little.
func nearestIntersection(nearby []entity.Entity, world geometry.Point2D, tol float64) Result {
	searchBox := geometry.NewRect(world.X-tol, world.Y-tol, 2*tol, 2*tol)

	best := Result{}
	bestDist := tol
	consider := func(p geometry.Point2D, id1, id2 string) {
		d := world.Distance(p)
		if d <= bestDist {
			bestDist = d
			best = Result{Found: true, Mode: ModeIntersection, Point: p, EntityID: id1, OtherID: id2}
		}
	}

	for i := 0; i < len(nearby); i++ {
		for j := i + 1; j < len(nearby); j++ {
			a, b := curveOf(nearby[i]), curveOf(nearby[j])
			id1, id2 := nearby[i].EntityID(), nearby[j].EntityID()

			switch {
			case !a.isCircle && !b.isCircle:
				for _, sa := range nearSegments(a.segments, searchBox) {
					for _, sb := range nearSegments(b.segments, searchBox) {
						if p, ok := geometry.SegmentIntersection(sa.A, sa.B, sb.A, sb.B); ok {
							consider(p, id1, id2)
						}
					}
				}
			case a.isCircle && !b.isCircle:
				for _, sb := range nearSegments(b.segments, searchBox) {
					for _, p := range geometry.CircleSegmentIntersections(a.center, a.radius, sb.A, sb.B) {
						if a.onSweep(p) {
							consider(p, id1, id2)
						}
					}
				}
			case !a.isCircle && b.isCircle:
				for _, sa := range nearSegments(a.segments, searchBox) {
					for _, p := range geometry.CircleSegmentIntersections(b.center, b.radius, sa.A, sa.B) {
						if b.onSweep(p) {
							consider(p, id1, id2)
						}
					}
				}
			default:
				for _, p := range geometry.CircleCircleIntersections(a.center, a.radius, b.center, b.radius) {
					if a.onSweep(p) && b.onSweep(p) {
						consider(p, id1, id2)
					}
				}
			}
		}
	}
	return best
}

func nearSegments(segments []geometry.Segment, box geometry.Rect) []geometry.Segment {
	var out []geometry.Segment
	for _, s := range segments {
		if geometry.NewRectFromPoints(s.A, s.B).Intersects(box) || geometry.SegmentIntersectsRect(s.A, s.B, box) {
			out = append(out, s)
		}
	}
	return out
}
