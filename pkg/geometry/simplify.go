package geometry

// SimplifyPath reduces the number of points in a path using the
// Douglas-Peucker algorithm. Points further than epsilon from the
// simplified line are kept. The endpoints are always preserved.
func SimplifyPath(path []Point2D, epsilon float64) []Point2D {
	if len(path) < 3 {
		return path
	}

	maxDist := 0.0
	maxIndex := 0
	first := path[0]
	last := path[len(path)-1]
	for i := 1; i < len(path)-1; i++ {
		dist := PerpendicularDistance(path[i], first, last)
		if dist > maxDist {
			maxDist = dist
			maxIndex = i
		}
	}

	if maxDist > epsilon {
		left := SimplifyPath(path[:maxIndex+1], epsilon)
		right := SimplifyPath(path[maxIndex:], epsilon)
		return append(left[:len(left)-1], right...)
	}

	return []Point2D{first, last}
}
