package shoeview

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetColor(t *testing.T) {
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	testCases := []struct {
		name     string
		col      color.RGBA
		point    []float64
		normal   []float64
		expected color.RGBA
	}{
		{
			name:     "head-on in the spotlight centre",
			col:      grey,
			point:    []float64{0, 0, 10},
			normal:   []float64{0, 0, -1},
			expected: grey,
		},
		{
			name:     "facing away gets ambient only",
			col:      grey,
			point:    []float64{0, 0, 10},
			normal:   []float64{0, 0, 1},
			expected: color.RGBA{R: 116, G: 116, B: 116, A: 255},
		},
		{
			name:     "edge-on gets ambient only",
			col:      grey,
			point:    []float64{10, 0, 10},
			normal:   []float64{1, 0, 0},
			expected: color.RGBA{R: 116, G: 116, B: 116, A: 255},
		},
		{
			name:     "45 degrees off centre",
			col:      grey,
			point:    []float64{10, 0, 10},
			normal:   []float64{-0.70710678118, 0, -0.70710678118},
			expected: color.RGBA{R: 117, G: 117, B: 117, A: 255},
		},
		{
			name:     "dark colours clamp",
			col:      color.RGBA{R: 10, G: 10, B: 10, A: 255},
			point:    []float64{0, 0, 10},
			normal:   []float64{0, 0, 1},
			expected: color.RGBA{R: 7, G: 7, B: 7, A: 255},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, getColor(tc.point, tc.normal, tc.col))
		})
	}
}

func TestAddEmissive(t *testing.T) {
	base := color.RGBA{R: 100, G: 200, B: 250, A: 255}
	assert.Equal(t, base, addEmissive(base, color.RGBA{}))
	assert.Equal(t,
		color.RGBA{R: 168, G: 255, B: 255, A: 255},
		addEmissive(base, color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}))
}
