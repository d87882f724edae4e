package predict

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Info describes the model currently served by a Registry.
type Info struct {
	Version  string    `json:"version"`
	Path     string    `json:"path"`
	LoadedAt time.Time `json:"loaded_at"`
}

type registry struct {
	mu *sync.RWMutex

	path     string
	model    *Model
	loadedAt time.Time

	logger   *slog.Logger
	debounce time.Duration

	nextSub int
	subs    map[int]chan Info
}

// Registry serves the current Model and swaps it when the model file changes.
// A reload that fails keeps the previous model.
type Registry interface {
	// Model returns the current model. It is never nil.
	Model() *Model

	// Info describes the current model.
	Info() Info

	// Reload reads the file again and, on success, swaps the model and notifies subscribers.
	//
	// Returns:
	//   - error: the load error; the previous model stays active
	Reload() error

	// Subscribe returns a channel receiving an Info after each successful reload, and a cancel
	// function. Slow subscribers only see the latest reload.
	//
	// Returns:
	//   - <-chan Info: the notifications
	//   - func(): cancels the subscription and closes the channel
	Subscribe() (<-chan Info, func())

	// Watch reloads the model whenever its file is written, created or renamed into place,
	// until ctx is done.
	//
	// Parameters:
	//   - ctx: stops the watch
	//
	// Returns:
	//   - error: a watcher setup error; nil after ctx is done
	Watch(ctx context.Context) error
}

var _ Registry = &registry{}

// RegistryBuilderOption configures a Registry during NewRegistry.
type RegistryBuilderOption func(*registry)

// WithLogger sets the logger for reload events.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) RegistryBuilderOption {
	return func(r *registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDebounce sets how long Watch waits for writes to settle before reloading.
//
// Parameters:
//   - d: the quiet period
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithDebounce(d time.Duration) RegistryBuilderOption {
	return func(r *registry) {
		r.debounce = d
	}
}

// NewRegistry loads the model at path.
//
// Parameters:
//   - path: the TOML model file
//   - options: registry options
//
// Returns:
//   - Registry: the registry
//   - error: the initial load error
func NewRegistry(path string, options ...RegistryBuilderOption) (Registry, error) {
	r := &registry{
		mu:       &sync.RWMutex{},
		path:     filepath.Clean(path),
		logger:   slog.Default(),
		debounce: 100 * time.Millisecond,
		subs:     make(map[int]chan Info),
	}
	for _, option := range options {
		option(r)
	}

	m, err := LoadModel(r.path)
	if err != nil {
		return nil, err
	}
	r.model = m
	r.loadedAt = time.Now()
	return r, nil
}

func (r *registry) Model() *Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.model
}

func (r *registry) Info() Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.info()
}

func (r *registry) info() Info {
	return Info{Version: r.model.Version, Path: r.path, LoadedAt: r.loadedAt}
}

func (r *registry) Reload() error {
	m, err := LoadModel(r.path)
	if err != nil {
		r.logger.Warn("model reload failed, keeping previous model", slog.String("path", r.path), slog.Any("error", err))
		return err
	}

	r.mu.Lock()
	r.model = m
	r.loadedAt = time.Now()
	info := r.info()
	for _, ch := range r.subs {
		// Keep only the newest notification for a subscriber that has not caught up.
		select {
		case <-ch:
		default:
		}
		ch <- info
	}
	r.mu.Unlock()

	r.logger.Info("model reloaded", slog.String("version", info.Version), slog.String("path", info.Path))
	return nil
}

func (r *registry) Subscribe() (<-chan Info, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan Info, 1)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
			close(ch)
		})
	}
}

func (r *registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch model: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and Save replace the file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch model: %w", err)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(r.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("model watcher error", slog.Any("error", err))
		case <-timer.C:
			_ = r.Reload()
		}
	}
}
