package geometry

import "math"

// Segment is a directed line segment between two points.
type Segment struct {
	A Point2D
	B Point2D
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// DistanceTo returns the shortest distance from p to the segment.
func (s Segment) DistanceTo(p Point2D) float64 {
	return PointToSegmentDistance(p, s.A, s.B)
}

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() Point2D {
	return s.A.Midpoint(s.B)
}

// ClosestPointOnSegment returns the point on segment a-b nearest to p,
// together with the parameter t in [0, 1] of that point along the segment.
func ClosestPointOnSegment(p, a, b Point2D) (Point2D, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return a, 0
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return Point2D{X: a.X + t*dx, Y: a.Y + t*dy}, t
}

// PointToSegmentDistance returns the shortest distance from p to the
// segment a-b.
func PointToSegmentDistance(p, a, b Point2D) float64 {
	closest, _ := ClosestPointOnSegment(p, a, b)
	return p.Distance(closest)
}

// PerpendicularDistance returns the distance from p to the infinite line
// through a and b.
func PerpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	den := math.Sqrt(dx*dx + dy*dy)
	if den == 0 {
		return p.Distance(a)
	}

	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	return num / den
}

// SegmentIntersection returns the intersection point of segments p1-p2
// and p3-p4, if they cross. Parallel or non-crossing segments return
// ok=false.
func SegmentIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	denom := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if math.Abs(denom) < 1e-10 {
		return Point2D{}, false
	}

	t := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / denom
	u := ((p3.X-p1.X)*(p2.Y-p1.Y) - (p3.Y-p1.Y)*(p2.X-p1.X)) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2D{}, false
	}

	return Point2D{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}

// LineIntersection returns the intersection point of the infinite lines
// through p1-p2 and p3-p4. Parallel lines return ok=false.
func LineIntersection(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	denom := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if math.Abs(denom) < 1e-10 {
		return Point2D{}, false
	}

	t := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / denom
	return Point2D{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}

// SegmentIntersectsRect returns true if segment a-b touches or crosses
// the rectangle, including the case where it lies fully inside.
func SegmentIntersectsRect(a, b Point2D, r Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	corners := r.Corners()
	for i := 0; i < 4; i++ {
		if _, ok := SegmentIntersection(a, b, corners[i], corners[(i+1)%4]); ok {
			return true
		}
	}
	return false
}
