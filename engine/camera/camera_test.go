package camera

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPose(t *testing.T) {
	ctrl := NewCameraController()
	x, y, z := ctrl.Position()
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 80, y, 1e-3)
	assert.InDelta(t, 200, z, 1e-3)

	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))
	assert.InDelta(t, common.DegToRad(75), cam.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), cam.Near())
	assert.Equal(t, float32(1000), cam.Far())

	vp := cam.ViewProjectionMatrix()
	origin := common.TransformPoint(vp[:], [3]float32{})
	assert.InDelta(t, 0, origin[0]/origin[3], 1e-4)
	assert.InDelta(t, 0, origin[1]/origin[3], 1e-4)
}

func TestOrbitAndReset(t *testing.T) {
	ctrl := NewCameraController()
	r := ctrl.Radius()
	for i := 0; i < 10; i++ {
		ctrl.OrbitLeft()
		ctrl.OrbitUp()
	}
	ctrl.Zoom(3)
	assert.InDelta(t, r-30, ctrl.Radius(), 1e-3)

	x, y, z := ctrl.Position()
	dist := common.Length3([3]float32{x, y, z})
	assert.InDelta(t, ctrl.Radius(), dist, 1e-2)

	ctrl.Reset()
	x, y, z = ctrl.Position()
	assert.InDelta(t, 80, y, 1e-3)
	assert.InDelta(t, 200, z, 1e-3)
	assert.InDelta(t, 0, x, 1e-3)
}

func TestZoomClamps(t *testing.T) {
	ctrl := NewCameraController(WithRadiusBounds(50, 300))
	ctrl.Zoom(1000)
	assert.Equal(t, float32(50), ctrl.Radius())
	ctrl.Zoom(-1000)
	assert.Equal(t, float32(300), ctrl.Radius())
}

func TestSetAspectIgnoresZero(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()))
	cam.SetAspect(2)
	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
	m := cam.ProjectionMatrix()
	for _, v := range m {
		assert.False(t, v != v)
	}
}
