package site

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
)

// BindControls maps window input to the camera controller: arrow keys orbit, the scroll wheel
// zooms, R restores the initial view and Escape calls quit.
//
// Parameters:
//   - win: the window
//   - ctrl: the controller to drive
//   - quit: called on Escape; may be nil
func BindControls(win window.Window, ctrl camera.CameraController, quit func()) {
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyLeft:
			ctrl.OrbitLeft()
		case common.KeyRight:
			ctrl.OrbitRight()
		case common.KeyUp:
			ctrl.OrbitUp()
		case common.KeyDown:
			ctrl.OrbitDown()
		case common.KeyR:
			ctrl.Reset()
		case common.KeyEsc:
			if quit != nil {
				quit()
			}
		}
	})
	win.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})
}
