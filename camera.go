package shoeview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultMinPitch = -math.Pi/2 + 0.05
	defaultMaxPitch = math.Pi/2 - 0.05
	zoomStep        = 0.1
)

// OrbitCamera circles a target point. Yaw turns around the world Y axis and
// pitch raises the eye above the target's horizon. Input accumulates as
// pending motion that Update applies, scaled by Damping when it is set.
type OrbitCamera struct {
	Target      *Vector3
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64
	// Damping is the share of pending motion applied per Update, in (0, 1).
	// Zero applies all of it at once.
	Damping float64
	// AutoRotate is added to the yaw on every Update.
	AutoRotate float64

	distance float64
	yaw      float64
	pitch    float64

	yawDelta   float64
	pitchDelta float64
	zoomDelta  float64
}

func NewOrbitCamera(distance, yaw, pitch float64) *OrbitCamera {
	c := &OrbitCamera{
		Target:      NewVector3(0, 0, 0),
		MinDistance: nearPlaneZ * 2,
		MaxDistance: math.MaxFloat64,
		MinPitch:    defaultMinPitch,
		MaxPitch:    defaultMaxPitch,
		yaw:         yaw,
	}
	c.distance = distance
	c.pitch = clampFloat(pitch, c.MinPitch, c.MaxPitch)
	return c
}

func (c *OrbitCamera) SetDistanceLimits(min, max float64) {
	c.MinDistance, c.MaxDistance = min, max
	c.distance = clampFloat(c.distance, min, max)
}

func (c *OrbitCamera) Distance() float64 { return c.distance }
func (c *OrbitCamera) Yaw() float64      { return c.yaw }
func (c *OrbitCamera) Pitch() float64    { return c.pitch }

// Rotate queues an orbit by the given angles in radians.
func (c *OrbitCamera) Rotate(dYaw, dPitch float64) {
	c.yawDelta += dYaw
	c.pitchDelta += dPitch
}

// Zoom queues a dolly. Positive steps move the eye closer.
func (c *OrbitCamera) Zoom(steps float64) {
	c.zoomDelta -= steps * zoomStep * c.distance
}

// Update applies queued motion. It returns true while the camera is moving.
func (c *OrbitCamera) Update() bool {
	k := c.Damping
	if k <= 0 || k >= 1 {
		k = 1
	}

	c.yaw += c.yawDelta*k + c.AutoRotate
	c.pitch = clampFloat(c.pitch+c.pitchDelta*k, c.MinPitch, c.MaxPitch)
	c.distance = clampFloat(c.distance+c.zoomDelta*k, c.MinDistance, c.MaxDistance)

	c.yawDelta *= 1 - k
	c.pitchDelta *= 1 - k
	c.zoomDelta *= 1 - k

	const settled = 1e-6
	if math.Abs(c.yawDelta) < settled {
		c.yawDelta = 0
	}
	if math.Abs(c.pitchDelta) < settled {
		c.pitchDelta = 0
	}
	if math.Abs(c.zoomDelta) < settled {
		c.zoomDelta = 0
	}
	return c.yawDelta != 0 || c.pitchDelta != 0 || c.zoomDelta != 0 || c.AutoRotate != 0
}

// GetPosition returns the eye in world space.
func (c *OrbitCamera) GetPosition() *Vector3 {
	rot := mgl64.Rotate3DY(c.yaw).Mul3(mgl64.Rotate3DX(c.pitch))
	off := rot.Mul3x1(mgl64.Vec3{0, 0, -c.distance})
	return NewVector3(c.Target.X+off.X(), c.Target.Y+off.Y(), c.Target.Z+off.Z())
}

// GetMatrix returns the world to camera transform.
func (c *OrbitCamera) GetMatrix() *Matrix {
	return LookAtMatrix(c.GetPosition(), c.Target, NewVector3(0, 1, 0))
}
