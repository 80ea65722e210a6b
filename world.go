package shoeview

import "github.com/smasonuk/shoeview/parts"

// farPlaneZ bounds pick rays.
const farPlaneZ = 100000

// World holds the model being shown and the camera looking at it.
type World struct {
	model  *Model
	camera *OrbitCamera
	width  float64
	height float64
}

func NewWorld(camera *OrbitCamera) *World {
	return &World{camera: camera, width: 1, height: 1}
}

// SetModel replaces the displayed model. nil clears the scene.
func (w *World) SetModel(m *Model) {
	w.model = m
}

func (w *World) Model() *Model {
	return w.model
}

func (w *World) Camera() *OrbitCamera {
	return w.camera
}

// SetViewport sets the render surface size in pixels.
func (w *World) SetViewport(width, height float64) {
	if width > 0 && height > 0 {
		w.width, w.height = width, height
	}
}

func (w *World) Viewport() (float64, float64) {
	return w.width, w.height
}

func (w *World) Update() bool {
	return w.camera.Update()
}

func (w *World) toCamera() bool {
	if w.model == nil {
		return false
	}
	w.model.ApplyMatrixTemp(w.camera.GetMatrix())
	return true
}

func (w *World) PaintObjects(canvas Canvas, surfaces SurfaceFunc) {
	if !w.toCamera() {
		return
	}
	w.model.PaintObject(canvas, float32(w.width), float32(w.height), surfaces)
}

// Pick casts a ray from the eye through a point given in normalised device
// coordinates, x and y in [-1, 1] with y up, and returns the nearest part hit.
func (w *World) Pick(x, y float64) (parts.ID, bool) {
	if !w.toCamera() {
		return parts.NoPart, false
	}
	sx := (x + 1) / 2 * w.width
	sy := (1 - y) / 2 * w.height

	nx, ny := ConvertFromScreen(w.width, w.height, sx, sy, nearPlaneZ)
	fx, fy := ConvertFromScreen(w.width, w.height, sx, sy, farPlaneZ)
	return w.model.PartIntersectingLine(NewVector3(nx, ny, nearPlaneZ), NewVector3(fx, fy, farPlaneZ))
}
