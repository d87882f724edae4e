package upload

import (
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
)

// Zone is the clickable drop area, anchored to the bottom-right corner of the window.
type Zone struct {
	Width  int
	Height int
	Margin int
}

// Contains reports whether framebuffer point (x, y) is inside the zone for a window of the given size.
func (z Zone) Contains(x, y int32, winWidth, winHeight int) bool {
	right := winWidth - z.Margin
	bottom := winHeight - z.Margin
	left := right - z.Width
	top := bottom - z.Height
	return int(x) >= left && int(x) < right && int(y) >= top && int(y) < bottom
}

// Bind feeds window input to the widget. A file drop anywhere on the window arrives as
// DragEnter then Drop, since GLFW only reports completed drops; a left click inside the zone is
// a Click.
//
// Parameters:
//   - w: the widget
//   - win: the window
//   - zone: the clickable area
func Bind(w Widget, win window.Window, zone Zone) {
	win.SetDropCallback(func(paths []string) {
		w.Handle(Event{Type: EventDragEnter})
		w.Handle(Event{Type: EventDrop, Files: paths})
	})
	win.SetClickCallback(func(x, y int32) {
		if zone.Contains(x, y, win.Width(), win.Height()) {
			w.Handle(Event{Type: EventClick})
		}
	})
}
