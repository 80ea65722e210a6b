package app

// Normalize maps a pixel position on a width x height surface to [-1, 1] on
// both axes with y up. Positions are in layout pixels, so the result does not
// depend on the device scale factor.
func Normalize(px, py, width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return px/width*2 - 1, 1 - py/height*2
}
