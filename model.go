package shoeview

import (
	"image/color"
	"math"

	"github.com/smasonuk/shoeview/internal/logging"
	"github.com/smasonuk/shoeview/parts"
)

// Surface is how one part is painted in the current frame.
type Surface struct {
	Color    color.RGBA
	Emissive color.RGBA
	Texture  parts.TextureRef
}

type SurfaceFunc func(id parts.ID) Surface

// Model is a set of faces grouped into named parts. Points live in object
// space in faceMesh; ApplyMatrixTemp writes camera space copies into the
// trans meshes used for painting and picking.
type Model struct {
	faceMesh        *Mesh
	normalMesh      *Mesh
	transFaceMesh   *Mesh
	transNormalMesh *Mesh
	faces           []*Face
	faceIndices     [][]int
	normalIndices   []int
	partOrder       []parts.ID
	drawList        *FaceStore
	xLength         float64
	yLength         float64
	zLength         float64
}

func NewModel() *Model {
	return &Model{
		faceMesh:   NewMesh(),
		normalMesh: NewMesh(),
		drawList:   NewFaceStore(),
	}
}

// AddFace adds a finished face. Faces with fewer than three points are
// dropped.
func (o *Model) AddFace(f *Face) {
	if len(f.Points) < 3 {
		return
	}
	o.faces = append(o.faces, f)
}

func (o *Model) AddFaces(faces []*Face) {
	for _, f := range faces {
		o.AddFace(f)
	}
}

// Finished builds the meshes. It must be called once, after the last face.
func (o *Model) Finished(centerObject bool) {
	seen := make(map[parts.ID]bool)
	for _, f := range o.faces {
		o.faceIndices = append(o.faceIndices, o.faceMesh.AddFace(f))
		o.normalIndices = append(o.normalIndices, o.normalMesh.AddNormal(f.GetNormal()))
		if !seen[f.Part] {
			seen[f.Part] = true
			o.partOrder = append(o.partOrder, f.Part)
		}
	}

	if centerObject {
		o.CentreObject()
	}
	o.CalcSize()

	if longest := o.longestSide(); longest > 0 {
		for _, f := range o.faces {
			if !f.HasUV() {
				f.UV = f.PlanarUV(1 / longest)
			}
		}
	}

	o.transFaceMesh = o.faceMesh.Copy()
	o.transNormalMesh = o.normalMesh.Copy()

	logging.Debug("model finished",
		"faces", len(o.faces),
		"points", o.faceMesh.Len(),
		"normals", o.normalMesh.Len(),
		"parts", len(o.partOrder))
}

func (o *Model) bounds() (min, max [3]float64, ok bool) {
	if o.faceMesh == nil || o.faceMesh.Len() == 0 {
		return min, max, false
	}
	first := o.faceMesh.Points.ThisMatrix[0]
	copy(min[:], first[:3])
	copy(max[:], first[:3])
	for _, point := range o.faceMesh.Points.ThisMatrix {
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], point[i])
			max[i] = math.Max(max[i], point[i])
		}
	}
	return min, max, true
}

// CentreObject moves all points so the bounding box centre is at 0,0,0.
func (o *Model) CentreObject() {
	min, max, ok := o.bounds()
	if !ok {
		return
	}
	centerX := (min[0] + max[0]) / 2.0
	centerY := (min[1] + max[1]) / 2.0
	centerZ := (min[2] + max[2]) / 2.0

	for i := range o.faceMesh.Points.ThisMatrix {
		o.faceMesh.Points.ThisMatrix[i][0] -= centerX
		o.faceMesh.Points.ThisMatrix[i][1] -= centerY
		o.faceMesh.Points.ThisMatrix[i][2] -= centerZ
	}
}

func (o *Model) CalcSize() {
	min, max, ok := o.bounds()
	if !ok {
		o.xLength, o.yLength, o.zLength = 0, 0, 0
		return
	}
	o.xLength = max[0] - min[0]
	o.yLength = max[1] - min[1]
	o.zLength = max[2] - min[2]
}

func (o *Model) GetExtents() (float64, float64, float64) {
	return o.xLength, o.yLength, o.zLength
}

func (o *Model) longestSide() float64 {
	return math.Max(o.xLength, math.Max(o.yLength, o.zLength))
}

func (o *Model) ScaleAllPoints(scale float64) {
	for i := range o.faceMesh.Points.ThisMatrix {
		o.faceMesh.Points.ThisMatrix[i][0] *= scale
		o.faceMesh.Points.ThisMatrix[i][1] *= scale
		o.faceMesh.Points.ThisMatrix[i][2] *= scale
	}
	o.CalcSize()
}

// FitToSize scales the model so its longest side is size.
func (o *Model) FitToSize(size float64) {
	if longest := o.longestSide(); longest > 0 {
		o.ScaleAllPoints(size / longest)
	}
}

// Parts lists the part IDs in the order their first face was added.
func (o *Model) Parts() []parts.ID {
	out := make([]parts.ID, len(o.partOrder))
	copy(out, o.partOrder)
	return out
}

func (o *Model) FaceCount() int {
	return len(o.faces)
}

// ApplyMatrixTemp transforms the model into the space aMatrix maps to,
// usually camera space, leaving the object space points untouched.
func (o *Model) ApplyMatrixTemp(aMatrix *Matrix) {
	if o.transFaceMesh == nil {
		return
	}
	aMatrix.TransformNormals(o.normalMesh.Points, o.transNormalMesh.Points)
	aMatrix.TransformObj(o.faceMesh.Points, o.transFaceMesh.Points)
}

func (o *Model) transformedFace(i int, buf [][]float64) [][]float64 {
	buf = buf[:0]
	for _, index := range o.faceIndices[i] {
		buf = append(buf, o.transFaceMesh.Points.ThisMatrix[index])
	}
	return buf
}

// PaintObject paints the camera space model onto canvas, back to front.
// Back faces are skipped unless the face is double sided.
func (o *Model) PaintObject(canvas Canvas, screenWidth, screenHeight float32, surfaces SurfaceFunc) {
	if o.transFaceMesh == nil {
		return
	}
	o.drawList.Reset()
	var buf [][]float64
	for i, face := range o.faces {
		points := o.transformedFace(i, buf)
		buf = points

		normal := o.transNormalMesh.Points.ThisMatrix[o.normalIndices[i]]
		first := points[0]
		where := normal[0]*first[0] + normal[1]*first[1] + normal[2]*first[2]
		if where >= 0 {
			if !face.DoubleSided {
				continue
			}
			normal = []float64{-normal[0], -normal[1], -normal[2]}
		}

		o.paintFace(float64(screenWidth), float64(screenHeight), face, points, normal, surfaces(face.Part))
	}
	o.drawList.SortFacesByDistance()
	o.drawList.Paint(canvas)
}

func (o *Model) paintFace(width, height float64, face *Face, points [][]float64, normal []float64, sf Surface) {
	textured := sf.Texture != "" && face.HasUV()

	poly := make([][]float64, len(points))
	for j, p := range points {
		if textured {
			poly[j] = []float64{p[0], p[1], p[2], face.UV[j][0], face.UV[j][1]}
		} else {
			poly[j] = []float64{p[0], p[1], p[2]}
		}
	}

	clipped := clipPolygonAgainstNearPlane(poly)
	if len(clipped) < 3 {
		return
	}

	df := drawFace{
		xp:  make([]float32, len(clipped)),
		yp:  make([]float32, len(clipped)),
		col: addEmissive(getColor(points[0], normal, sf.Color), sf.Emissive),
	}
	if textured {
		df.texture = sf.Texture
		df.uv = make([][2]float32, len(clipped))
	}
	for j, p := range clipped {
		// z >= nearPlaneZ here so the divide is safe
		df.xp[j] = ConvertToScreenX(width, height, p[0], p[2])
		df.yp[j] = ConvertToScreenY(width, height, p[1], p[2])
		df.depth += p[2]
		if textured {
			df.uv[j] = [2]float32{float32(p[3]), float32(p[4])}
		}
	}
	df.depth /= float64(len(clipped))
	o.drawList.AddFace(df)
}

// PartIntersectingLine returns the part of the face nearest to start that
// the camera space segment crosses.
func (o *Model) PartIntersectingLine(start, end *Vector3) (parts.ID, bool) {
	if o.transFaceMesh == nil {
		return parts.NoPart, false
	}
	best := math.MaxFloat64
	hit := parts.NoPart
	var buf [][]float64
	for i, face := range o.faces {
		points := o.transformedFace(i, buf)
		buf = points
		if t, ok := LineIntersectsPolygon(start, end, points); ok && t < best {
			best = t
			hit = face.Part
		}
	}
	return hit, hit != parts.NoPart
}
