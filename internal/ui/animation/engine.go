package animation

import (
	"context"
	"sync"

	"portfolio/internal/logging"

	"fyne.io/fyne/v2"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Options contains runtime collaborators for an Engine.
type Options struct {
	Clock    clock.Clock
	Logger   *zap.Logger
	Dispatch func(func())
}

// Engine runs staggered reveal sequences.
type Engine struct {
	mu       sync.Mutex
	config   Config
	reveal   func(index int)
	options  Options
	cancel   context.CancelFunc
	timers   []*clock.Timer
	revealed int
}

// New creates a new animation engine. reveal is called on the UI thread with
// the index of each element as its turn comes.
func New(config Config, reveal func(index int), options Options) *Engine {
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Dispatch == nil {
		options.Dispatch = fyne.Do
	}
	options.Logger = logging.OrNop(options.Logger)
	return &Engine{
		config:  config,
		reveal:  reveal,
		options: options,
	}
}

// Start reveals count elements, replacing any sequence already running.
// Cancelling ctx or calling Stop halts the remaining steps.
func (engine *Engine) Start(ctx context.Context, count int) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.revealed = 0
	for index := 0; index < count; index++ {
		step := index
		timer := engine.options.Clock.AfterFunc(engine.config.Delay(step), func() {
			engine.step(runCtx, step)
		})
		engine.timers = append(engine.timers, timer)
	}
	engine.options.Logger.Debug("reveal started", zap.Int("elements", count))
}

// Stop terminates any active sequence.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

// Revealed returns how many elements of the current sequence have appeared.
func (engine *Engine) Revealed() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.revealed
}

func (engine *Engine) stopLocked() {
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	for _, timer := range engine.timers {
		timer.Stop()
	}
	engine.timers = nil
}

func (engine *Engine) step(ctx context.Context, index int) {
	defer logging.Recover(engine.options.Logger, "reveal")

	engine.mu.Lock()
	if ctx.Err() != nil {
		engine.mu.Unlock()
		return
	}
	engine.revealed++
	engine.mu.Unlock()

	engine.options.Dispatch(func() {
		if ctx.Err() != nil {
			return
		}
		engine.reveal(index)
	})
}
