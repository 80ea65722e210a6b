package shoeview

// Mesh is a deduplicated point list. Faces and normals refer to rows by index
// so a transform touches each shared vertex once.
type Mesh struct {
	Points     *Matrix
	pointIndex map[[3]float64]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     NewMatrix(),
		pointIndex: make(map[[3]float64]int),
	}
}

// AddPoint returns the stored row for point and its index, adding it if it
// is not present yet.
func (m *Mesh) AddPoint(point []float64) ([]float64, int) {
	pointKey := [3]float64{point[0], point[1], point[2]}

	if index, found := m.pointIndex[pointKey]; found {
		return m.Points.ThisMatrix[index], index
	}

	pointCopy := []float64{point[0], point[1], point[2], 1.0}
	m.Points.AddRow(pointCopy)
	newIndex := len(m.Points.ThisMatrix) - 1
	m.pointIndex[pointKey] = newIndex

	return pointCopy, newIndex
}

// AddFace stores the face's points and returns their indices.
func (m *Mesh) AddFace(f *Face) []int {
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		_, indices[i] = m.AddPoint(p)
	}
	return indices
}

func (m *Mesh) AddNormal(n *Vector3) int {
	_, idx := m.AddPoint([]float64{n.X, n.Y, n.Z})
	return idx
}

func (m *Mesh) Len() int {
	return len(m.Points.ThisMatrix)
}

func (m *Mesh) Copy() *Mesh {
	newPointIndex := make(map[[3]float64]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		newPointIndex[key] = value
	}

	return &Mesh{
		Points:     m.Points.Copy(),
		pointIndex: newPointIndex,
	}
}
