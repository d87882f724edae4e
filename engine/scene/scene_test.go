package scene

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() camera.Camera {
	ctrl := camera.NewCameraController(camera.WithEye(0, 80, 200))
	return camera.NewCamera(camera.WithAspect(4.0/3.0), camera.WithController(ctrl))
}

func TestFrameComposesWorldMatrices(t *testing.T) {
	mat := material.NewMaterial()
	crane := game_object.NewGameObject(game_object.WithPosition(-120, 0, 40))
	hook := game_object.NewGameObject(game_object.WithMesh(model.NewBox(3, 3, 3), mat), game_object.WithPosition(35, 18, 0))
	require.NoError(t, crane.Add(hook))

	s := NewScene(WithCamera(newTestCamera()), WithFog(0xffffff, 200, 500))
	require.NoError(t, s.Add(crane))

	f, err := s.Frame()
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
	p := common.TransformPoint(f.Items[0].World[:], [3]float32{})
	assert.InDelta(t, -85, p[0], 1e-4)
	assert.InDelta(t, 18, p[1], 1e-4)
	assert.InDelta(t, 40, p[2], 1e-4)
	require.NotNil(t, f.Fog)
	assert.Equal(t, float32(500), f.Fog.Far)
	assert.Equal(t, uint32(0xffffff), f.Background.Hex())
}

func TestDisabledSubtreeIsSkipped(t *testing.T) {
	mat := material.NewMaterial()
	group := game_object.NewGameObject()
	require.NoError(t, group.Add(
		game_object.NewGameObject(game_object.WithMesh(model.NewBox(1, 1, 1), mat)),
		game_object.NewGameObject(game_object.WithMesh(model.NewBox(1, 1, 1), mat)),
	))
	s := NewScene(WithCamera(newTestCamera()))
	require.NoError(t, s.Add(group))
	assert.Equal(t, 2, s.Count())

	group.SetEnabled(false)
	assert.Equal(t, 0, s.Count())
	f, err := s.Frame()
	require.NoError(t, err)
	assert.Empty(t, f.Items)
}

func TestLights(t *testing.T) {
	ambient := light.NewLight(light.LightTypeAmbient)
	sun := light.NewLight(light.LightTypeDirectional)
	s := NewScene(WithLights(ambient, sun))
	assert.Len(t, s.Lights(), 2)
	s.RemoveLight(ambient)
	require.Len(t, s.Lights(), 1)
	assert.Equal(t, sun, s.Lights()[0])
}

func TestRenderRequiresCameraAndRenderer(t *testing.T) {
	s := NewScene()
	assert.ErrorIs(t, s.Render(), ErrNoRenderer)

	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, nil, renderer.WithSize(16, 12), renderer.WithWorkers(1))
	require.NoError(t, err)
	defer r.Release()
	s.SetRenderer(r)
	assert.ErrorIs(t, s.Render(), ErrNoCamera)

	s.SetCamera(newTestCamera())
	require.NoError(t, s.Render())
	assert.NotNil(t, r.Snapshot())
}

func TestFogIsCopied(t *testing.T) {
	s := NewScene(WithFog(0xffffff, 200, 500))
	f := s.Fog()
	f.Near = 1
	assert.Equal(t, float32(200), s.Fog().Near)
	s.SetFog(nil)
	assert.Nil(t, s.Fog())
}
