package shoeview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookAtMatrixMapsTargetAhead(t *testing.T) {
	m := LookAtMatrix(NewVector3(0, 0, -100), NewVector3(0, 0, 0), NewVector3(0, 1, 0))

	p := m.TransformPoint(NewVector3(0, 0, 0))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, 100, p.Z, 1e-9)

	up := m.TransformPoint(NewVector3(0, 10, 0))
	assert.InDelta(t, 10, up.Y, 1e-9)

	// looking down +Z with Y up, world +X is on the viewer's left
	side := m.TransformPoint(NewVector3(10, 0, 0))
	assert.InDelta(t, -10, side.X, 1e-9)
}

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera(100, 0, 0)
	p := c.GetPosition()
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, -100, p.Z, 1e-9)

	c = NewOrbitCamera(100, 0, math.Pi/4)
	p = c.GetPosition()
	assert.Greater(t, p.Y, 0.0, "positive pitch looks down from above")
	assert.InDelta(t, 100, p.Length(), 1e-9)
}

func TestOrbitCameraPitchIsClamped(t *testing.T) {
	c := NewOrbitCamera(100, 0, 0)
	c.Rotate(0, 10)
	c.Update()
	assert.InDelta(t, defaultMaxPitch, c.Pitch(), 1e-9)

	c.Rotate(0, -20)
	c.Update()
	assert.InDelta(t, defaultMinPitch, c.Pitch(), 1e-9)
}

func TestOrbitCameraDampingConverges(t *testing.T) {
	c := NewOrbitCamera(100, 0, 0)
	c.Damping = 0.5
	c.Rotate(1, 0)

	assert.True(t, c.Update())
	assert.InDelta(t, 0.5, c.Yaw(), 1e-9)
	for i := 0; i < 40; i++ {
		c.Update()
	}
	assert.InDelta(t, 1, c.Yaw(), 1e-5)
	assert.False(t, c.Update())
}

func TestOrbitCameraZoomLimits(t *testing.T) {
	c := NewOrbitCamera(400, 0, 0)
	c.SetDistanceLimits(200, 800)

	c.Zoom(1)
	c.Update()
	assert.InDelta(t, 360, c.Distance(), 1e-9)

	for i := 0; i < 50; i++ {
		c.Zoom(1)
		c.Update()
	}
	assert.Equal(t, 200.0, c.Distance())

	for i := 0; i < 50; i++ {
		c.Zoom(-1)
		c.Update()
	}
	assert.Equal(t, 800.0, c.Distance())
}

func TestAutoRotateKeepsMoving(t *testing.T) {
	c := NewOrbitCamera(100, 0, 0)
	c.AutoRotate = 0.01
	assert.True(t, c.Update())
	assert.InDelta(t, 0.01, c.Yaw(), 1e-12)
}
