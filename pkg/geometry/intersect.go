package geometry

import "math"

// CircleSegmentIntersections returns the points where segment a-b
// crosses the circle outline, between zero and two points.
func CircleSegmentIntersections(center Point2D, radius float64, a, b Point2D) []Point2D {
	d := b.Sub(a)
	f := a.Sub(center)

	// Solve |a + t*d - center|^2 = r^2 for t in [0, 1].
	A := d.X*d.X + d.Y*d.Y
	B := 2 * (f.X*d.X + f.Y*d.Y)
	C := f.X*f.X + f.Y*f.Y - radius*radius

	if A == 0 {
		return nil
	}
	disc := B*B - 4*A*C
	if disc < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(disc)
	var points []Point2D
	for _, t := range []float64{(-B - sqrtDisc) / (2 * A), (-B + sqrtDisc) / (2 * A)} {
		if t < 0 || t > 1 {
			continue
		}
		p := Point2D{X: a.X + t*d.X, Y: a.Y + t*d.Y}
		// A tangent hit produces the same root twice.
		if len(points) == 1 && points[0].Distance(p) < 1e-9 {
			continue
		}
		points = append(points, p)
	}
	return points
}

// CircleCircleIntersections returns the points where two circle
// outlines cross, between zero and two points. Coincident circles
// return none.
func CircleCircleIntersections(c1 Point2D, r1 float64, c2 Point2D, r2 float64) []Point2D {
	d := c1.Distance(c2)
	if d == 0 {
		return nil
	}
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return nil
	}

	// Distance from c1 to the chord midpoint along the center line.
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)

	mid := Point2D{
		X: c1.X + a*(c2.X-c1.X)/d,
		Y: c1.Y + a*(c2.Y-c1.Y)/d,
	}
	if h == 0 {
		return []Point2D{mid}
	}
	return []Point2D{
		{X: mid.X + h*(c2.Y-c1.Y)/d, Y: mid.Y - h*(c2.X-c1.X)/d},
		{X: mid.X - h*(c2.Y-c1.Y)/d, Y: mid.Y + h*(c2.X-c1.X)/d},
	}
}
