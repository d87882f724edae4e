package server

import (
	"log/slog"
	"time"
)

// ServerBuilderOption is a functional option for configuring a Server during construction.
type ServerBuilderOption func(*server)

// WithLogger sets the logger for requests and websocket events.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ServerBuilderOption {
	return func(s *server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxUploadMB caps the request body of an upload.
//
// Parameters:
//   - mb: the limit in megabytes; values <= 0 keep the default of 16
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithMaxUploadMB(mb int) ServerBuilderOption {
	return func(s *server) {
		if mb > 0 {
			s.maxUploadMB = mb
		}
	}
}

// WithOutputName sets the attachment filename of the predictions.
func WithOutputName(name string) ServerBuilderOption {
	return func(s *server) {
		if name != "" {
			s.output = name
		}
	}
}

// WithTitle sets the upload page title.
func WithTitle(title string) ServerBuilderOption {
	return func(s *server) {
		s.title = title
	}
}

// WithWriteTimeout bounds each websocket write.
//
// Parameters:
//   - d: the timeout; values <= 0 keep the default of 5s
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithWriteTimeout(d time.Duration) ServerBuilderOption {
	return func(s *server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}
