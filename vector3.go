package shoeview

import "math"

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(p []float64) *Vector3 {
	return &Vector3{X: p[0], Y: p[1], Z: p[2]}
}

func (v *Vector3) Add(x, y, z float64) {
	v.X += x
	v.Y += y
	v.Z += z
}

// Sub returns v - o.
func (v *Vector3) Sub(o *Vector3) *Vector3 {
	return &Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v *Vector3) Scale(s float64) *Vector3 {
	return &Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v *Vector3) Dot(o *Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v *Vector3) Normalize() {
	length := v.Length()
	if length == 0 {
		return
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Cross calculates the cross product of two 3-element vectors.
func Cross(a, b *Vector3) *Vector3 {
	return NewVector3(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

func GetLength(vec []float64) float64 {
	return math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
}
