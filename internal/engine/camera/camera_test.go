package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/vbomesh/pkg/math"
	"github.com/Faultbox/vbomesh/pkg/mesh"
)

const epsilon = 1e-4

func TestPosition_Distance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}
	c.Distance = 10

	for _, rot := range [][2]float32{{0, 0}, {0.5, 1}, {-1.2, 3}} {
		c.RotationX, c.RotationY = rot[0], rot[1]
		got := c.Position().Sub(c.Center).Len()
		assert.InDelta(t, 10, got, epsilon, "rotation %v", rot)
	}
}

func TestPosition_ZeroRotationLooksDownZ(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX, c.RotationY = 0, 0
	c.Distance = 4

	pos := c.Position()
	assert.InDelta(t, 0, pos.X(), epsilon)
	assert.InDelta(t, 0, pos.Y(), epsilon)
	assert.InDelta(t, 4, pos.Z(), epsilon)
}

func TestViewMatrix_CenterOnAxis(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{5, -1, 2}
	c.Distance = 7

	v := c.ViewMatrix().Mul4x1(c.Center.Vec4(1))
	assert.InDelta(t, 0, v.X(), epsilon)
	assert.InDelta(t, 0, v.Y(), epsilon)
	assert.InDelta(t, -7, v.Z(), epsilon)
}

func TestHandleDrag_ClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.RotationX)

	c.HandleDrag(0, -100000)
	assert.Equal(t, c.MinPitch, c.RotationX)

	yaw := c.RotationY
	c.HandleDrag(100, 0)
	assert.InDelta(t, yaw-100*c.DragSensitivity, c.RotationY, epsilon)
}

func TestHandleZoom_Clamps(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)

	for i := 0; i < 500; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestHandleMovement_ForwardMovesTowardCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 0
	before := c.Position()

	c.HandleMovement(1, 0, 0)

	// Camera sits on +Z at zero yaw, forward moves the center toward -Z
	assert.Less(t, c.Center.Z(), float32(0))
	assert.InDelta(t, 0, c.Center.X(), epsilon)
	assert.Less(t, c.Position().Z(), before.Z())
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := mesh.Bounds{
		Min: math.Vec3{X: 10, Y: 0, Z: -2},
		Max: math.Vec3{X: 14, Y: 4, Z: 2},
	}

	c.FitToBounds(b)

	assert.InDelta(t, 12, c.Center.X(), epsilon)
	assert.InDelta(t, 2, c.Center.Y(), epsilon)
	assert.InDelta(t, 0, c.Center.Z(), epsilon)

	// Every corner must lie in front of the near plane and inside the far plane
	view := c.ViewMatrix()
	for _, x := range []float32{b.Min.X, b.Max.X} {
		for _, y := range []float32{b.Min.Y, b.Max.Y} {
			for _, z := range []float32{b.Min.Z, b.Max.Z} {
				depth := -view.Mul4x1(mgl32.Vec4{x, y, z, 1}).Z()
				assert.Greater(t, depth, c.NearPlane)
				assert.Less(t, depth, c.FarPlane)
			}
		}
	}
	assert.GreaterOrEqual(t, c.Distance, c.MinDistance)
	assert.LessOrEqual(t, c.Distance, c.MaxDistance)
}

func TestFitToBounds_Empty(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mesh.Bounds{})

	assert.Greater(t, c.Distance, float32(0))
	assert.Greater(t, c.NearPlane, float32(0))
	assert.Equal(t, mgl32.Vec3{}, c.Center)
}

func TestProjectionMatrix_BadAspect(t *testing.T) {
	c := NewOrbitCamera()
	assert.Equal(t, c.ProjectionMatrix(1), c.ProjectionMatrix(0))
}
