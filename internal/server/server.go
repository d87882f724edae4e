// Package server exposes the beam prediction model over HTTP: an upload page, the CSV upload
// endpoint that returns predictions, a health check and a websocket of model reloads.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// FormField is the multipart field carrying the uploaded CSV.
const FormField = "file"

//go:embed templates/*.html
var templateFS embed.FS

type server struct {
	mu *sync.Mutex

	echo     *echo.Echo
	registry predict.Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader

	title        string
	output       string
	maxUploadMB  int
	writeTimeout time.Duration

	addr net.Addr
}

// Server is the prediction HTTP service.
type Server interface {
	// Handler returns the HTTP handler serving every route.
	//
	// Returns:
	//   - http.Handler: the echo router
	Handler() http.Handler

	// Serve accepts connections on l until ctx is done, then shuts down gracefully.
	//
	// Parameters:
	//   - ctx: stops the server
	//   - l: the listener
	//
	// Returns:
	//   - error: a serve error; nil after a clean shutdown
	Serve(ctx context.Context, l net.Listener) error

	// ListenAndServe listens on addr and calls Serve.
	//
	// Parameters:
	//   - ctx: stops the server
	//   - addr: the TCP address, for example ":5000"
	//
	// Returns:
	//   - error: a listen or serve error
	ListenAndServe(ctx context.Context, addr string) error

	// Addr returns the bound address once serving, nil before.
	//
	// Returns:
	//   - net.Addr: the listener address
	Addr() net.Addr
}

var _ Server = &server{}

type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// NewServer builds the echo router around the model registry.
//
// Parameters:
//   - registry: the source of the current model
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the service
//   - error: a template parse error
func NewServer(registry predict.Registry, options ...ServerBuilderOption) (Server, error) {
	s := &server{
		mu:           &sync.Mutex{},
		registry:     registry,
		logger:       slog.Default(),
		title:        "Beam Predictions",
		output:       "predictions.csv",
		maxUploadMB:  16,
		writeTimeout: 5 * time.Second,
	}
	for _, option := range options {
		option(s)
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{templates: templates}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			s.logger.LogAttrs(context.Background(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))

	e.GET("/", s.index)
	e.POST("/upload", s.upload, middleware.BodyLimit(fmt.Sprintf("%dM", s.maxUploadMB)))
	e.GET("/healthz", s.healthz)
	e.GET("/ws", s.events)

	s.echo = e
	return s, nil
}

func (s *server) Handler() http.Handler {
	return s.echo
}

func (s *server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}

func (s *server) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	s.addr = l.Addr()
	s.mu.Unlock()

	s.echo.Listener = l
	errs := make(chan error, 1)
	go func() {
		errs <- s.echo.Start("")
	}()
	s.logger.Info("prediction service listening", slog.String("addr", l.Addr().String()))

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdown); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
