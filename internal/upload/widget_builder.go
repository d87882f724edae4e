package upload

import (
	"log/slog"
	"time"
)

// WidgetBuilderOption configures a Widget during NewWidget.
type WidgetBuilderOption func(*widget)

// WithPicker sets the picker opened by a click in the zone. Without one, clicks do nothing.
//
// Parameters:
//   - p: the picker
//
// Returns:
//   - WidgetBuilderOption: option function to apply
func WithPicker(p Picker) WidgetBuilderOption {
	return func(w *widget) {
		w.picker = p
	}
}

// WithLogger sets the logger for ignored files and picker failures.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WidgetBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) WidgetBuilderOption {
	return func(w *widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithTimeout bounds each submission.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - WidgetBuilderOption: option function to apply
func WithTimeout(d time.Duration) WidgetBuilderOption {
	return func(w *widget) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithResultCallback registers a function called after every submission with its outcome.
// Errors handed to fn are not returned again by Wait.
//
// Parameters:
//   - fn: the callback, run on the submission goroutine
//
// Returns:
//   - WidgetBuilderOption: option function to apply
func WithResultCallback(fn func(path string, err error)) WidgetBuilderOption {
	return func(w *widget) {
		w.onResult = fn
	}
}
