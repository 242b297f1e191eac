package geometry

import "math"

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleOf returns the angle of p as seen from center, in radians.
func AngleOf(center, p Point2D) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// PointOnCircle returns the point at the given angle on a circle.
func PointOnCircle(center Point2D, radius, angle float64) Point2D {
	return Point2D{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// ArcSweep returns the counter-clockwise sweep from start to end in
// radians, in (0, 2π]. Equal angles describe a full circle.
func ArcSweep(start, end float64) float64 {
	sweep := NormalizeAngle(end - start)
	if sweep == 0 {
		return 2 * math.Pi
	}
	return sweep
}

// AngleOnArc returns true if the angle lies on the counter-clockwise
// sweep from start to end.
func AngleOnArc(angle, start, end float64) bool {
	return NormalizeAngle(angle-start) <= ArcSweep(start, end)+1e-12
}

// ArcMidAngle returns the angle halfway along the counter-clockwise
// sweep from start to end.
func ArcMidAngle(start, end float64) float64 {
	return NormalizeAngle(start + ArcSweep(start, end)/2)
}
