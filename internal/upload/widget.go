// Package upload implements the CSV drop zone: a small state machine fed by window drag, drop and
// click events that submits the first dropped file when it is a CSV.
package upload

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Suffix is the literal, case-sensitive file name ending a file must have to be submitted.
const Suffix = ".csv"

// State is the visual state of the drop zone.
type State int

const (
	// StateIdle is the resting zone.
	StateIdle State = iota
	// StateDragActive highlights the zone while something is dragged over it.
	StateDragActive
)

func (s State) String() string {
	if s == StateDragActive {
		return "drag-active"
	}
	return "idle"
}

// EventType identifies a drop zone event.
type EventType int

const (
	EventDragEnter EventType = iota
	EventDragOver
	EventDragLeave
	EventDrop
	EventClick
)

// Event is one input event for the zone. Files is set for EventDrop.
type Event struct {
	Type  EventType
	Files []string
}

// Submitter sends a file to the form action.
type Submitter interface {
	Submit(ctx context.Context, path string) error
}

// Picker asks the user for files. An empty result means the user cancelled.
type Picker interface {
	Pick(ctx context.Context) ([]string, error)
}

type widget struct {
	mu    *sync.Mutex
	state State

	submitter Submitter
	picker    Picker
	logger    *slog.Logger
	timeout   time.Duration
	onResult  func(path string, err error)

	group     *errgroup.Group
	serial    sync.Mutex
	submitted atomic.Int64
}

// Widget is the drop zone state machine.
//
// Every event is consumed. Drag events only change State; a drop, or a click followed by a pick,
// looks at the first file alone and submits it once if its name ends in Suffix. Other files are
// ignored without feedback. Picking and submission run in the background and submissions never
// overlap.
type Widget interface {
	// State returns the current zone state.
	State() State

	// Handle applies an event.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - bool: whether the event was consumed; always true
	Handle(ev Event) bool

	// Submitted returns how many submissions have been started.
	Submitted() int

	// Wait blocks until background picks and submissions finish.
	//
	// Returns:
	//   - error: the first submission error not already handed to a result callback
	Wait() error
}

var _ Widget = &widget{}

// NewWidget creates an idle Widget submitting through s.
//
// Parameters:
//   - s: the submitter
//   - options: widget options
//
// Returns:
//   - Widget: the widget
func NewWidget(s Submitter, options ...WidgetBuilderOption) Widget {
	w := &widget{
		mu:        &sync.Mutex{},
		state:     StateIdle,
		submitter: s,
		logger:    slog.Default(),
		timeout:   30 * time.Second,
		group:     &errgroup.Group{},
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *widget) Handle(ev Event) bool {
	switch ev.Type {
	case EventDragEnter, EventDragOver:
		w.setState(StateDragActive)
	case EventDragLeave:
		w.setState(StateIdle)
	case EventDrop:
		w.setState(StateIdle)
		w.accept(ev.Files)
	case EventClick:
		w.pick()
	}
	return true
}

func (w *widget) setState(s State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = s
}

// eligible reports whether the first file should be submitted.
func (w *widget) eligible(files []string) (string, bool) {
	if len(files) == 0 {
		return "", false
	}
	first := files[0]
	if !strings.HasSuffix(first, Suffix) {
		w.logger.Debug("ignoring file without csv suffix", slog.String("file", first))
		return "", false
	}
	w.submitted.Add(1)
	return first, true
}

func (w *widget) accept(files []string) {
	if path, ok := w.eligible(files); ok {
		w.group.Go(func() error {
			return w.submit(path)
		})
	}
}

// submit runs one submission at a time, bounded by the widget timeout.
func (w *widget) submit(path string) error {
	w.serial.Lock()
	defer w.serial.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.submitter.Submit(ctx, path)
	if w.onResult != nil {
		// Reported already; Wait should not surface it a second time.
		w.onResult(path, err)
		return nil
	}
	return err
}

func (w *widget) pick() {
	if w.picker == nil {
		return
	}
	w.group.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		files, err := w.picker.Pick(ctx)
		cancel()
		if err != nil {
			w.logger.Warn("file picker failed", slog.Any("error", err))
			return nil
		}
		if path, ok := w.eligible(files); ok {
			return w.submit(path)
		}
		return nil
	})
}

func (w *widget) Submitted() int {
	return int(w.submitted.Load())
}

func (w *widget) Wait() error {
	return w.group.Wait()
}
