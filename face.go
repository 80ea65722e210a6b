package shoeview

import "github.com/smasonuk/shoeview/parts"

// Face is a convex polygon belonging to one part of a model. Points are in
// object space; UV is either empty or parallel to Points.
type Face struct {
	Points      [][]float64
	UV          [][2]float64
	Part        parts.ID
	DoubleSided bool

	normal  *Vector3
	vecPnts [][]float64
	vecUV   [][2]float64
	meRev   bool
}

const (
	FACE_NORMAL  = 0
	FACE_REVERSE = 1
)

func NewFace(part parts.ID) *Face {
	return &Face{Part: part}
}

func (f *Face) AddPoint(x, y, z float64) {
	f.vecPnts = append(f.vecPnts, []float64{x, y, z, 1.0})
}

func (f *Face) AddPointUV(x, y, z, u, v float64) {
	f.AddPoint(x, y, z)
	f.vecUV = append(f.vecUV, [2]float64{u, v})
}

// Finished fixes the point list. FACE_REVERSE flips the winding, for sources
// that wind clockwise.
func (f *Face) Finished(reverse int) {
	if reverse == FACE_REVERSE {
		f.meRev = true
	}
	f.Points = f.vecPnts
	if len(f.vecUV) == len(f.vecPnts) {
		f.UV = f.vecUV
	}
	f.vecPnts, f.vecUV = nil, nil
	f.normal = nil
}

func (f *Face) HasUV() bool {
	return len(f.UV) > 0 && len(f.UV) == len(f.Points)
}

func (f *Face) GetNormal() *Vector3 {
	if f.normal == nil {
		f.createNormal()
	}
	return f.normal.Copy()
}

// createNormal uses Newell's method so that quads with a repeated or
// collinear leading vertex still get a usable normal.
func (f *Face) createNormal() {
	if len(f.Points) < 3 {
		f.normal = NewVector3(0, 0, 1)
		return
	}

	n := NewVector3(0, 0, 0)
	for i := range f.Points {
		cur := f.Points[i]
		next := f.Points[(i+1)%len(f.Points)]
		n.X += (cur[1] - next[1]) * (cur[2] + next[2])
		n.Y += (cur[2] - next[2]) * (cur[0] + next[0])
		n.Z += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	if f.meRev {
		n = n.Scale(-1)
	}
	n.Normalize()
	f.normal = n
}

func (f *Face) GetMidPoint() *Vector3 {
	if len(f.Points) == 0 {
		return NewVector3(0, 0, 0)
	}

	sumX, sumY, sumZ := 0.0, 0.0, 0.0
	for _, p := range f.Points {
		sumX += p[0]
		sumY += p[1]
		sumZ += p[2]
	}
	count := float64(len(f.Points))
	return NewVector3(sumX/count, sumY/count, sumZ/count)
}

// PlanarUV projects the face onto the plane its normal is most aligned with,
// for faces that carry no texture coordinates.
func (f *Face) PlanarUV(scale float64) [][2]float64 {
	n := f.GetNormal()
	u, v := dominantAxes(n)
	out := make([][2]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = [2]float64{p[u] * scale, p[v] * scale}
	}
	return out
}
