package shoeview

import "math"

// LineIntersectsPolygon reports where the segment from lineStart to lineEnd
// crosses a planar convex polygon, as the fraction t along the segment.
func LineIntersectsPolygon(lineStart, lineEnd *Vector3, polygonPoints [][]float64) (float64, bool) {
	if len(polygonPoints) < 3 {
		return 0, false
	}

	plane := NewPlaneFromPolygon(polygonPoints)
	normal := plane.Normal()
	if normal.Length() < epsilon {
		return 0, false
	}

	t, ok := plane.SegmentIntersect(lineStart, lineEnd)
	if !ok {
		return 0, false
	}

	dir := lineEnd.Sub(lineStart)
	hit := NewVector3(
		lineStart.X+t*dir.X,
		lineStart.Y+t*dir.Y,
		lineStart.Z+t*dir.Z,
	)
	if !isPointInPolygon(hit, polygonPoints, normal) {
		return 0, false
	}
	return t, true
}

// isPointInPolygon tests a point already on the polygon's plane by ray
// casting in the 2D projection that keeps the most area.
func isPointInPolygon(point *Vector3, polygonPoints [][]float64, normal *Vector3) bool {
	u, v := dominantAxes(normal)
	p := []float64{point.X, point.Y, point.Z}
	px, py := p[u], p[v]

	intersections := 0
	numVertices := len(polygonPoints)
	for i := 0; i < numVertices; i++ {
		a := polygonPoints[i]
		b := polygonPoints[(i+1)%numVertices]

		if (a[v] > py) != (b[v] > py) {
			xIntersection := (b[u]-a[u])*(py-a[v])/(b[v]-a[v]) + a[u]
			if px < xIntersection {
				intersections++
			}
		}
	}
	return intersections%2 == 1
}

// dominantAxes returns the coordinate indices left after dropping the axis the
// normal points along most.
func dominantAxes(normal *Vector3) (int, int) {
	absX := math.Abs(normal.X)
	absY := math.Abs(normal.Y)
	absZ := math.Abs(normal.Z)

	switch {
	case absX > absY && absX > absZ:
		return 1, 2
	case absY > absX && absY > absZ:
		return 0, 2
	default:
		return 0, 1
	}
}
