package shoeview

import "math"

// Matrix is a row-vector transform: a point p maps to p*M, so translation
// lives in row 3.
type Matrix struct {
	ThisMatrix [][]float64
}

func NewMatrix() *Matrix {
	return &Matrix{
		ThisMatrix: make([][]float64, 0, 100),
	}
}

func NewMatrixFromData(aMatrix [][]float64) *Matrix {
	m := &Matrix{
		ThisMatrix: make([][]float64, len(aMatrix)),
	}
	for i := range aMatrix {
		m.ThisMatrix[i] = make([]float64, len(aMatrix[i]))
		copy(m.ThisMatrix[i], aMatrix[i])
	}
	return m
}

func empty4() [][]float64 {
	m := make([][]float64, 4)
	for i := range m {
		m[i] = make([]float64, 4)
	}
	return m
}

// LookAtMatrix builds the world to camera transform for a camera at eye
// looking at target. Camera space has +Z forward and +Y up.
func LookAtMatrix(eye, target, up *Vector3) *Matrix {
	forward := target.Sub(eye)
	forward.Normalize()
	right := Cross(forward, up)
	right.Normalize()
	camUp := Cross(right, forward)

	m := empty4()
	m[0][0], m[1][0], m[2][0] = right.X, right.Y, right.Z
	m[0][1], m[1][1], m[2][1] = camUp.X, camUp.Y, camUp.Z
	m[0][2], m[1][2], m[2][2] = forward.X, forward.Y, forward.Z
	m[3][0] = -right.Dot(eye)
	m[3][1] = -camUp.Dot(eye)
	m[3][2] = -forward.Dot(eye)
	m[3][3] = 1.0
	return &Matrix{ThisMatrix: m}
}

func (m *Matrix) AddRow(row []float64) {
	m.ThisMatrix = append(m.ThisMatrix, row)
}

func (m *Matrix) TransformObj(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz + m.ThisMatrix[3][0]
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz + m.ThisMatrix[3][1]
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz + m.ThisMatrix[3][2]
	}
}

// TransformNormals rotates direction vectors. Translation is ignored and the
// results are renormalised so scaled transforms keep unit normals.
func (m *Matrix) TransformNormals(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		nx := m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz
		ny := m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz
		nz := m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz
		if l := math.Sqrt(nx*nx + ny*ny + nz*nz); l > 0 {
			nx, ny, nz = nx/l, ny/l, nz/l
		}
		dest.ThisMatrix[x][0], dest.ThisMatrix[x][1], dest.ThisMatrix[x][2] = nx, ny, nz
	}
}

// TransformPoint applies the full transform to a single point.
func (m *Matrix) TransformPoint(v *Vector3) *Vector3 {
	return NewVector3(
		m.ThisMatrix[0][0]*v.X+m.ThisMatrix[1][0]*v.Y+m.ThisMatrix[2][0]*v.Z+m.ThisMatrix[3][0],
		m.ThisMatrix[0][1]*v.X+m.ThisMatrix[1][1]*v.Y+m.ThisMatrix[2][1]*v.Z+m.ThisMatrix[3][1],
		m.ThisMatrix[0][2]*v.X+m.ThisMatrix[1][2]*v.Y+m.ThisMatrix[2][2]*v.Z+m.ThisMatrix[3][2],
	)
}

func (m *Matrix) Copy() *Matrix {
	return NewMatrixFromData(m.ThisMatrix)
}
