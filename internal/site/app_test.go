package site

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := Assemble(
		WithSize(48, 32),
		WithRendererOptions(renderer.WithSupersample(1), renderer.WithWorkers(2), renderer.WithShadowMapSize(64)),
	)
	require.NoError(t, err)
	t.Cleanup(app.Release)
	return app
}

func TestAssemble(t *testing.T) {
	app := newTestApp(t)

	require.Len(t, app.Cranes, 6)
	assert.Len(t, app.Scene.Root().Children(), 3+6)
	assert.Equal(t, 1+51+98+6*6, app.Scene.Count())
	assert.Len(t, app.Scene.Lights(), 3)

	assert.InDelta(t, 48.0/32.0, app.Camera.Aspect(), 1e-6)
	assert.InDelta(t, common.DegToRad(75), app.Camera.Fov(), 1e-6)
	eye := app.Camera.Position()
	assert.InDelta(t, 0, eye[0], 1e-3)
	assert.InDelta(t, 80, eye[1], 1e-3)
	assert.InDelta(t, 200, eye[2], 1e-3)

	assert.True(t, app.Sun.CastsShadows())
	assert.Equal(t, 2048, app.Sun.Shadow().MapSize)
	assert.Equal(t, float32(500), app.Sun.Shadow().Far)
	assert.False(t, app.Fill.CastsShadows())
	assert.InDelta(t, 0.4, app.Ambient.Intensity(), 1e-6)

	fog := app.Scene.Fog()
	require.NotNil(t, fog)
	assert.Equal(t, [2]float32{200, 500}, [2]float32{fog.Near, fog.Far})
}

func TestAnimateMovesNamedParts(t *testing.T) {
	app := newTestApp(t)
	const ms = 4321.0
	app.Animate(ms)

	assert.InDelta(t, WaterOpacity(ms), app.Water.Material().Opacity(), 1e-6)
	for i, c := range app.Cranes {
		want := CranePose(ms, i)
		_, yaw, _ := c.Group.Rotation()
		assert.InDelta(t, want.Yaw, yaw, 1e-6)
		x, y, z := c.Hook.Position()
		assert.Equal(t, [3]float32{35, want.HookY, 0}, [3]float32{x, y, z})
		_, y, _ = c.Block.Position()
		assert.Equal(t, want.BlockY, y)
		_, sy, _ := c.Cable.Scale()
		assert.Equal(t, want.CableScaleY, sy)
		gx, _, gz := c.Group.Position()
		assert.Equal(t, CranePositions[i], [2]float32{gx, gz})
	}
}

func TestResizeLeavesTransforms(t *testing.T) {
	app := newTestApp(t)
	app.Animate(1000)
	before := app.Cranes[2].Hook.WorldMatrix()

	app.Resize(800, 600)
	assert.InDelta(t, 800.0/600.0, app.Camera.Aspect(), 1e-6)
	w, h := app.Renderer.Size()
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})
	assert.Equal(t, before, app.Cranes[2].Hook.WorldMatrix())

	app.Resize(0, 600)
	assert.InDelta(t, 800.0/600.0, app.Camera.Aspect(), 1e-6)
}

func TestStepRendersFrame(t *testing.T) {
	app := newTestApp(t)
	d := NewDriver(app)
	require.NoError(t, d.Step(2500))

	img := app.Renderer.Snapshot()
	require.NotNil(t, img)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.InDelta(t, WaterOpacity(2500), app.Water.Material().Opacity(), 1e-6)
	assert.Positive(t, app.Renderer.Stats().Triangles)
}

func TestDriverStartStop(t *testing.T) {
	app := newTestApp(t)
	var ticks atomic.Int64
	clock := func() float64 { return float64(ticks.Add(1)) * 16 }
	d := NewDriver(app, WithClock(clock), WithFrameRate(200))

	require.NoError(t, d.Start(context.Background()))
	assert.ErrorIs(t, d.Start(context.Background()), ErrRunning)
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, 5*time.Second, 5*time.Millisecond)
	d.Stop()
	d.Stop()

	stopped := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
	assert.NotNil(t, app.Renderer.Snapshot())

	require.NoError(t, d.Start(context.Background()))
	d.Stop()
}
