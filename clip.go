package shoeview

// Camera space points closer than nearPlaneZ are clipped away before the
// perspective divide.
const nearPlaneZ = 10

// conversionFactor is the focal length as a multiple of the viewport height.
const conversionFactor = 1.25

func focalLength(height float64) float64 {
	return conversionFactor * height
}

func ConvertToScreenX(width, height, x, z float64) float32 {
	return float32(focalLength(height)*x/z + width/2)
}

// ConvertToScreenY flips Y so camera up is screen up.
func ConvertToScreenY(width, height, y, z float64) float32 {
	return float32(height/2 - focalLength(height)*y/z)
}

// ConvertFromScreen is the inverse projection of a screen position onto the
// camera space plane at depth z.
func ConvertFromScreen(width, height, sx, sy, z float64) (float64, float64) {
	f := focalLength(height)
	x := (sx - width/2) * z / f
	y := (height/2 - sy) * z / f
	return x, y
}

// clipPolygonAgainstNearPlane keeps the part of a convex polygon at or beyond
// the near plane. Points may carry extra components after x, y, z (texture
// coordinates); they are interpolated along with the position.
func clipPolygonAgainstNearPlane(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return [][]float64{}
	}

	out := make([][]float64, 0, len(points)+2)
	prev := points[len(points)-1]
	prevIn := prev[2] >= nearPlaneZ
	for _, cur := range points {
		curIn := cur[2] >= nearPlaneZ
		switch {
		case curIn && !prevIn:
			out = append(out, intersectNearPlane(prev, cur), cur)
		case curIn:
			out = append(out, cur)
		case prevIn:
			out = append(out, intersectNearPlane(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// intersectNearPlane returns the point where the segment p1-p2 meets the
// near plane. A segment parallel to the plane yields a copy of p1.
func intersectNearPlane(p1, p2 []float64) []float64 {
	n := len(p1)
	if len(p2) < n {
		n = len(p2)
	}
	out := make([]float64, n)
	dz := p2[2] - p1[2]
	if dz == 0 {
		copy(out, p1)
		return out
	}
	t := (nearPlaneZ - p1[2]) / dz
	for i := 0; i < n; i++ {
		out[i] = p1[i] + (p2[i]-p1[i])*t
	}
	return out
}
