package geometry

import "math"

// PointInPolygon returns true if the point is inside the polygon using
// the ray casting algorithm. The polygon is treated as closed even when
// the last vertex does not repeat the first.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi := polygon[i]
		pj := polygon[j]
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
		j = i
	}
	return inside
}

// PolygonArea returns the unsigned area of a simple polygon via the
// shoelace formula.
func PolygonArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		sum += polygon[j].X*polygon[i].Y - polygon[i].X*polygon[j].Y
		j = i
	}
	return math.Abs(sum) / 2
}

// PolygonIntersectsSegment returns true if the segment a-b crosses any
// edge of the polygon boundary.
func PolygonIntersectsSegment(polygon []Point2D, a, b Point2D) bool {
	if len(polygon) < 2 {
		return false
	}
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		if _, ok := SegmentIntersection(polygon[j], polygon[i], a, b); ok {
			return true
		}
		j = i
	}
	return false
}
