// Package imageload fills canvas images from URIs in the background and keeps
// track of which ones made it.
package imageload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"portfolio/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

// State is the load progress of one image.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Tracker loads images and remembers the outcome per URI.
type Tracker struct {
	logger   *zap.Logger
	dispatch func(func())

	mu     sync.Mutex
	states map[string]State
	wg     sync.WaitGroup
}

// NewTracker creates a Tracker. A nil dispatch means fyne.Do.
func NewTracker(logger *zap.Logger, dispatch func(func())) *Tracker {
	if dispatch == nil {
		dispatch = fyne.Do
	}
	return &Tracker{
		logger:   logging.OrNop(logger),
		dispatch: dispatch,
		states:   make(map[string]State),
	}
}

// Load reads uri into img without blocking. Failures are logged and the
// image shows a placeholder; they never reach the caller.
func (tracker *Tracker) Load(ctx context.Context, img *canvas.Image, uri string) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		// Nothing to fetch; the element is complete as it stands.
		tracker.set(uri, StateLoaded)
		return
	}
	tracker.set(uri, StateLoading)

	tracker.wg.Add(1)
	logging.Go(tracker.logger, "image load", func() {
		defer tracker.wg.Done()

		resource, err := read(ctx, uri)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			tracker.set(uri, StateFailed)
			tracker.logger.Warn("Failed to load image", zap.String("uri", uri), zap.Error(err))
			tracker.dispatch(func() {
				img.Resource = theme.BrokenImageIcon()
				img.Refresh()
			})
			return
		}
		tracker.set(uri, StateLoaded)
		tracker.dispatch(func() {
			img.Resource = resource
			img.Refresh()
		})
	})
}

// Wait blocks until every started load has finished.
func (tracker *Tracker) Wait() {
	tracker.wg.Wait()
}

// States returns a snapshot of every URI seen so far.
func (tracker *Tracker) States() map[string]State {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	snapshot := make(map[string]State, len(tracker.states))
	for uri, state := range tracker.states {
		snapshot[uri] = state
	}
	return snapshot
}

// State returns the state recorded for uri.
func (tracker *Tracker) State(uri string) (State, bool) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	state, ok := tracker.states[strings.TrimSpace(uri)]
	return state, ok
}

func (tracker *Tracker) set(uri string, state State) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.states[uri] = state
}

func read(ctx context.Context, uri string) (fyne.Resource, error) {
	parsed, err := parseURI(uri)
	if err != nil {
		return nil, err
	}
	reader, err := storage.Reader(parsed)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	defer reader.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rawData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if len(rawData) == 0 {
		return nil, fmt.Errorf("read %s: empty image", uri)
	}
	return fyne.NewStaticResource(parsed.Name(), rawData), nil
}

// parseURI accepts full URIs as well as plain file paths.
func parseURI(uri string) (fyne.URI, error) {
	if strings.Contains(uri, "://") {
		parsed, err := storage.ParseURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse image uri %q: %w", uri, err)
		}
		return parsed, nil
	}
	absolute, err := filepath.Abs(uri)
	if err != nil {
		return nil, fmt.Errorf("resolve image path %q: %w", uri, err)
	}
	return storage.NewFileURI(absolute), nil
}
