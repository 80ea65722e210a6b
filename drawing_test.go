package shoeview

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatcherKeepsPaintOrder(t *testing.T) {
	b := NewPolygonBatcher()
	xs := []float32{0, 10, 10}
	ys := []float32{0, 0, 10}
	uv := [][2]float32{{0, 0}, {1, 0}, {1, 1}}

	b.AddPolygon(xs, ys, nil, color.RGBA{A: 255}, "")
	b.AddPolygon(xs, ys, nil, color.RGBA{A: 255}, "")
	assert.Equal(t, 1, b.Batches(), "consecutive solid polygons share a batch")

	// unknown textures fall back to the solid batch
	b.AddPolygon(xs, ys, uv, color.RGBA{A: 255}, "denim")
	assert.Equal(t, 1, b.Batches())

	b.AddPolygon(xs[:2], ys[:2], nil, color.RGBA{A: 255}, "")
	assert.Equal(t, 1, b.Batches(), "degenerate polygons are dropped")
	assert.Len(t, b.batches[0].indices, 9)
	assert.Len(t, b.batches[0].vertices, 9)
}
