// Package camera provides the orbit camera used by the mesh viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/vbomesh/pkg/mesh"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV       float32 // Vertical field of view, degrees
	NearPlane float32
	FarPlane  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.4,
		RotationY:       0.6,
		MinDistance:     0.01,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45,
		NearPlane:       0.01,
		FarPlane:        100,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cosPitch := math32.Cos(c.RotationX)
	offset := mgl32.Vec3{
		cosPitch * math32.Sin(c.RotationY),
		math32.Sin(c.RotationX),
		cosPitch * math32.Cos(c.RotationY),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	// Forward is the view direction projected on XZ, right is perpendicular
	sin, cos := math32.Sincos(c.RotationY)
	fwd := mgl32.Vec3{-sin, 0, -cos}
	rgt := mgl32.Vec3{cos, 0, -sin}

	move := fwd.Mul(forward).Add(rgt.Mul(right)).Add(mgl32.Vec3{0, up, 0})
	c.Center = c.Center.Add(move.Mul(speed))
}

// FitToBounds frames the bounding box so the whole mesh is visible and
// scales the zoom range and clip planes to its size.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	center := b.Center()
	c.Center = mgl32.Vec3{center.X, center.Y, center.Z}

	radius := b.Size().Length() / 2
	if radius <= 0 || !isFinite(radius) {
		radius = 1
	}

	halfFOV := mgl32.DegToRad(c.FOV) / 2
	c.Distance = radius / math32.Sin(halfFOV) * 1.1

	c.MinDistance = radius * 0.05
	c.MaxDistance = c.Distance * 20
	c.NearPlane = radius * 0.01
	c.FarPlane = c.MaxDistance + radius*2

	c.RotationX = 0.4
	c.RotationY = 0.6
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
