package shoeview

import (
	"image/color"
	"sort"

	"github.com/smasonuk/shoeview/parts"
)

// drawFace is a projected, shaded polygon waiting to be painted.
type drawFace struct {
	xp, yp  []float32
	uv      [][2]float32
	col     color.RGBA
	texture parts.TextureRef
	depth   float64
}

// FaceStore collects the visible faces of a frame so they can be painted
// back to front.
type FaceStore struct {
	faces []drawFace
}

func NewFaceStore() *FaceStore {
	return &FaceStore{faces: make([]drawFace, 0, 64)}
}

func (fs *FaceStore) AddFace(f drawFace) {
	fs.faces = append(fs.faces, f)
}

func (fs *FaceStore) FaceCount() int {
	return len(fs.faces)
}

func (fs *FaceStore) Reset() {
	fs.faces = fs.faces[:0]
}

// SortFacesByDistance puts the farthest faces at the start of the slice.
// Equal depths keep insertion order so coplanar faces paint consistently.
func (fs *FaceStore) SortFacesByDistance() {
	sort.SliceStable(fs.faces, func(i, j int) bool {
		return fs.faces[i].depth > fs.faces[j].depth
	})
}

func (fs *FaceStore) Paint(canvas Canvas) {
	for i := range fs.faces {
		f := &fs.faces[i]
		canvas.AddPolygon(f.xp, f.yp, f.uv, f.col, f.texture)
	}
}
