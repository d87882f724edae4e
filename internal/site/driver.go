package site

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrRunning is returned by Start when the driver loop is already running.
var ErrRunning = errors.New("driver already running")

// Clock returns the current animation timestamp in milliseconds.
type Clock func() float64

// WallClock is milliseconds since the Unix epoch.
func WallClock() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}

type driver struct {
	mu *sync.Mutex // serializes Step

	app      *App
	clock    Clock
	interval time.Duration
	logger   *slog.Logger

	loopMu *sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Driver animates and renders an App.
//
// Each Step applies the animation for its timestamp and then renders, so the frame always shows
// that step's state. Steps never overlap.
type Driver interface {
	// Step animates the scene to t milliseconds and renders one frame.
	//
	// Parameters:
	//   - t: timestamp in milliseconds
	//
	// Returns:
	//   - error: the render error
	Step(t float64) error

	// Animate applies the animation for the clock's current time without rendering, for callers
	// such as the engine loop that render on their own.
	Animate()

	// Start runs Step at the frame interval with the driver's clock until Stop or ctx is done.
	//
	// Parameters:
	//   - ctx: stops the loop when done
	//
	// Returns:
	//   - error: ErrRunning when already started
	Start(ctx context.Context) error

	// Stop ends the loop started by Start and waits for the frame in flight. Safe to call when stopped.
	Stop()
}

var _ Driver = &driver{}

// DriverBuilderOption configures a Driver during NewDriver.
type DriverBuilderOption func(*driver)

// WithClock replaces the wall clock, typically with a synthetic one in tests.
//
// Parameters:
//   - clock: the timestamp source
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithClock(clock Clock) DriverBuilderOption {
	return func(d *driver) {
		d.clock = clock
	}
}

// WithFrameRate sets how often the Start loop steps.
//
// Parameters:
//   - fps: frames per second; values <= 0 keep the default of 60
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithFrameRate(fps float64) DriverBuilderOption {
	return func(d *driver) {
		if fps > 0 {
			d.interval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// NewDriver creates a stopped driver for app.
//
// Parameters:
//   - app: the site to animate
//   - options: driver options
//
// Returns:
//   - Driver: the driver
func NewDriver(app *App, options ...DriverBuilderOption) Driver {
	d := &driver{
		mu:       &sync.Mutex{},
		loopMu:   &sync.Mutex{},
		app:      app,
		clock:    WallClock,
		interval: time.Second / 60,
		logger:   app.logger,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *driver) Step(t float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.app.Animate(t)
	return d.app.Scene.Render()
}

func (d *driver) Animate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.app.Animate(d.clock())
}

func (d *driver) Start(ctx context.Context) error {
	d.loopMu.Lock()
	defer d.loopMu.Unlock()
	if d.done != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.loop(ctx, d.done)
	return nil
}

func (d *driver) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("animation loop recovered from panic", slog.Any("panic", r))
		}
	}()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.Step(d.clock()); err != nil {
				d.logger.Warn("frame failed", slog.Any("error", err))
			}
		}
	}
}

func (d *driver) Stop() {
	d.loopMu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.loopMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
