package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"portfolio/internal/logging"

	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 300 * time.Millisecond

// WatcherOptions contains runtime collaborators for a Watcher.
type WatcherOptions struct {
	Debounce time.Duration
	Clock    clock.Clock
	Logger   *zap.Logger
}

// Watcher reports changes to a single content file. Rapid saves collapse into
// one callback after the debounce window.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	options  WatcherOptions
	onChange func()
	pending  *clock.Timer
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for path. onChange runs on a timer goroutine.
func NewWatcher(path string, onChange func(), options WatcherOptions) (*Watcher, error) {
	if options.Debounce <= 0 {
		options.Debounce = defaultDebounce
	}
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	options.Logger = logging.OrNop(options.Logger)

	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watched path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		path:     absolute,
		options:  options,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the file's directory; editors often replace files instead of writing them.
// This method is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.options.Logger.Info("watching portfolio content", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.options.Logger.Warn("closing content watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.options.Logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.options.Clock.AfterFunc(w.options.Debounce, w.fire)
}

func (w *Watcher) fire() {
	defer logging.Recover(w.options.Logger, "content changed")

	w.mu.Lock()
	running := w.running
	w.pending = nil
	w.mu.Unlock()
	if !running || w.onChange == nil {
		return
	}
	w.options.Logger.Info("portfolio content changed", zap.String("path", w.path))
	w.onChange()
}
