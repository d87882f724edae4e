package site

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyWindow records the input callbacks BindControls installs.
type keyWindow struct {
	window.Window
	keyDown func(uint32)
	scroll  func(float32)
}

func (w *keyWindow) SetKeyDownCallback(cb func(uint32)) { w.keyDown = cb }
func (w *keyWindow) SetScrollCallback(cb func(float32)) { w.scroll = cb }

func TestBindControls(t *testing.T) {
	win := &keyWindow{}
	ctrl := camera.NewCameraController(camera.WithEye(0, 80, 200), camera.WithTarget(0, 0, 0))
	quits := 0
	BindControls(win, ctrl, func() { quits++ })
	require.NotNil(t, win.keyDown)
	require.NotNil(t, win.scroll)

	azimuth := ctrl.Azimuth()
	win.keyDown(common.KeyLeft)
	assert.NotEqual(t, azimuth, ctrl.Azimuth())
	win.keyDown(common.KeyR)
	assert.InDelta(t, azimuth, ctrl.Azimuth(), 1e-5)
	assert.Zero(t, quits)

	win.keyDown(common.KeyEsc)
	assert.Equal(t, 1, quits)

	BindControls(win, ctrl, nil)
	assert.NotPanics(t, func() { win.keyDown(common.KeyEsc) })
}
