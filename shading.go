package shoeview

import (
	"image/color"
	"math"
)

const (
	ambientLight         = 0.65
	spotlightConePower   = 10.0
	spotlightLightAmount = 1.0 - ambientLight
	minChannel           = 7
)

// getColor lights a face with an ambient term plus a spotlight sitting on the
// camera. Camera space normals facing the viewer have negative Z.
func getColor(firstTransformedPoint, transformedNormal []float64, polyColor color.RGBA) color.RGBA {
	diffuseFactor := -transformedNormal[2]
	if diffuseFactor < 0 {
		diffuseFactor = 0
	}

	spotlightFactor := 1.0
	if lenVecToPoint := GetLength(firstTransformedPoint); lenVecToPoint > 0 {
		cosAngle := firstTransformedPoint[2] / lenVecToPoint
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	}

	finalBrightness := ambientLight + diffuseFactor*spotlightFactor*spotlightLightAmount

	c := 240 - int(finalBrightness*240)
	return color.RGBA{
		R: uint8(clamp(int(polyColor.R)-c, minChannel, 255)),
		G: uint8(clamp(int(polyColor.G)-c, minChannel, 255)),
		B: uint8(clamp(int(polyColor.B)-c, minChannel, 255)),
		A: polyColor.A,
	}
}

// addEmissive adds a self-lit colour on top of the lit colour.
func addEmissive(c, emissive color.RGBA) color.RGBA {
	if emissive == (color.RGBA{}) {
		return c
	}
	return color.RGBA{
		R: uint8(clamp(int(c.R)+int(emissive.R), 0, 255)),
		G: uint8(clamp(int(c.G)+int(emissive.G), 0, 255)),
		B: uint8(clamp(int(c.B)+int(emissive.B), 0, 255)),
		A: c.A,
	}
}
