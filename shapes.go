package shoeview

import "github.com/smasonuk/shoeview/parts"

// ModelSize is the length of the longest side of a loaded model after it has
// been fitted to the view.
const ModelSize = 200.0

// box corner i has x from bit 0, y from bit 1 and z from bit 2
var boxFaces = [6][4]int{
	{1, 3, 7, 5}, // +x
	{0, 4, 6, 2}, // -x
	{2, 6, 7, 3}, // +y
	{0, 1, 5, 4}, // -y
	{4, 5, 7, 6}, // +z
	{0, 2, 3, 1}, // -z
}

var quadUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// NewBox returns the six outward facing quads of an axis aligned box centred
// on cx, cy, cz.
func NewBox(part parts.ID, cx, cy, cz, sx, sy, sz float64) []*Face {
	var corners [8][3]float64
	for i := range corners {
		corners[i] = [3]float64{cx - sx/2, cy - sy/2, cz - sz/2}
		if i&1 != 0 {
			corners[i][0] += sx
		}
		if i&2 != 0 {
			corners[i][1] += sy
		}
		if i&4 != 0 {
			corners[i][2] += sz
		}
	}

	faces := make([]*Face, 0, 6)
	for _, quad := range boxFaces {
		f := NewFace(part)
		for j, c := range quad {
			p := corners[c]
			f.AddPointUV(p[0], p[1], p[2], quadUV[j][0], quadUV[j][1])
		}
		f.Finished(FACE_NORMAL)
		faces = append(faces, f)
	}
	return faces
}

// NewDemoShoe builds a blocky trainer out of boxes. It stands in when no
// model file is configured and names its parts the way exported shoe models
// do.
func NewDemoShoe() *Model {
	m := NewModel()
	m.AddFaces(NewBox("Sole_Bottom", 0, 5, 0, 260, 10, 96))
	m.AddFaces(NewBox("Sole_Top", 0, 14, 0, 250, 8, 90))
	m.AddFaces(NewBox("Inside", 0, 19.5, 0, 220, 3, 78))
	m.AddFaces(NewBox("Outside_1", -10, 48, 42, 210, 60, 6))
	m.AddFaces(NewBox("Outside_2", -10, 48, -42, 210, 60, 6))
	m.AddFaces(NewBox("Caps", 112, 35, 0, 26, 34, 84))
	m.AddFaces(NewBox("Band", -118, 50, 0, 14, 64, 84))
	m.AddFaces(NewBox("Tongue", 45, 70, 0, 90, 8, 60))
	for _, x := range []float64{20, 40, 60, 80} {
		m.AddFaces(NewBox("Laces", x, 76, 0, 5, 3, 64))
	}
	for _, f := range m.faces {
		f.Part = parts.Normalize(string(f.Part))
	}
	m.Finished(true)
	m.FitToSize(ModelSize)
	return m
}
