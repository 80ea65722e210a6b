package shoeview

import "math"

// Plane is Ax + By + Cz + D = 0.
type Plane struct {
	A, B, C, D float64
}

const epsilon = 1e-9

func NewPlane(point []float64, normal *Vector3) *Plane {
	p := &Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
	}
	p.D = -(p.A*point[0] + p.B*point[1] + p.C*point[2])
	return p
}

// NewPlaneFromPolygon takes the plane through the first three points.
func NewPlaneFromPolygon(points [][]float64) *Plane {
	p0 := NewVector3FromArray(points[0])
	p1 := NewVector3FromArray(points[1])
	p2 := NewVector3FromArray(points[2])
	n := Cross(p1.Sub(p0), p2.Sub(p0))
	return NewPlane(points[0], n)
}

func (p *Plane) Normal() *Vector3 {
	return NewVector3(p.A, p.B, p.C)
}

func (p *Plane) PointOnPlane(x, y, z float64) float64 {
	return p.A*x + p.B*y + p.C*z + p.D
}

// SegmentIntersect returns the parameter t in [0, 1] at which the segment
// from start to end crosses the plane.
func (p *Plane) SegmentIntersect(start, end *Vector3) (float64, bool) {
	dir := end.Sub(start)
	denom := p.A*dir.X + p.B*dir.Y + p.C*dir.Z
	if math.Abs(denom) < epsilon {
		return 0, false
	}
	t := -p.PointOnPlane(start.X, start.Y, start.Z) / denom
	if t < -epsilon || t > 1+epsilon {
		return 0, false
	}
	return t, true
}
