package rotation

import (
	"errors"
	"fmt"
	"sync"

	"portfolio/internal/core/model"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

var (
	// ErrIdle indicates a rotation with fewer than two items; it never moves.
	ErrIdle = errors.New("rotation is idle")
	// ErrClosed indicates the rotation has been disposed.
	ErrClosed = errors.New("rotation is closed")
	// ErrIndexOutOfRange indicates a jump target outside the item range.
	ErrIndexOutOfRange = errors.New("rotation index out of range")
	// ErrIndicatorMismatch indicates the indicator count does not match the item count.
	ErrIndicatorMismatch = errors.New("indicator count does not match item count")
	// ErrNilSink indicates a missing presentation sink.
	ErrNilSink = errors.New("rotation sink is nil")
)

// Options contains runtime collaborators for an Engine.
type Options struct {
	Clock  clock.Clock
	Logger *zap.Logger
	// Dispatch runs sink updates on the UI thread. It must not block on the engine.
	Dispatch func(func())
}

// Engine is a timed slide-advance state machine shared by every carousel.
type Engine struct {
	mu         sync.Mutex
	config     model.RotationConfig
	options    Options
	sink       Sink
	state      State
	items      []ItemState
	indicators int
	current    int
	leaving    int
	generation uint64
	ticker     *clock.Ticker
	stopTick   chan struct{}
	clearTimer *clock.Timer
	events     []chan Event
	wg         sync.WaitGroup
}

// New creates an Engine for the given item and indicator counts.
// Fewer than two items yields an idle engine that never starts a timer.
func New(config model.RotationConfig, items, indicators int, sink Sink, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	if items < 0 || indicators < 0 {
		return nil, fmt.Errorf("%w: %s: negative count", ErrIndicatorMismatch, config.Name)
	}
	if indicators != items && !(items <= 1 && indicators == 0) {
		return nil, fmt.Errorf("%w: %s: %d items, %d indicators", ErrIndicatorMismatch, config.Name, items, indicators)
	}
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Dispatch == nil {
		options.Dispatch = func(fn func()) { fn() }
	}

	engine := &Engine{
		config:     config,
		options:    options,
		sink:       sink,
		state:      StateReady,
		items:      make([]ItemState, items),
		indicators: indicators,
		leaving:    -1,
	}
	if items <= 1 {
		engine.state = StateIdle
	}
	if items > 0 {
		engine.setItemLocked(0, ItemActive)
		engine.setIndicatorLocked(0, true)
	}
	return engine, nil
}

// Name returns the configured rotation name.
func (engine *Engine) Name() string {
	return engine.config.Name
}

// Config returns the rotation configuration.
func (engine *Engine) Config() model.RotationConfig {
	return engine.config
}

// Len returns the number of items.
func (engine *Engine) Len() int {
	return len(engine.items)
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateClosed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start launches automatic rotation.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateReady {
		return
	}
	engine.state = StateRunning
	engine.startTimerLocked()
	engine.emitLocked(Event{Type: EventStateChange, State: StateRunning, Index: engine.current})
}

// Pause stops automatic rotation until Resume.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning {
		return
	}
	engine.state = StatePaused
	engine.stopTimerLocked()
	engine.emitLocked(Event{Type: EventStateChange, State: StatePaused, Index: engine.current})
}

// Resume restarts automatic rotation with a full interval.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StatePaused {
		return
	}
	engine.state = StateRunning
	engine.startTimerLocked()
	engine.emitLocked(Event{Type: EventStateChange, State: StateRunning, Index: engine.current})
}

// ResetTimer cancels the pending advance and starts a full interval.
// While paused it only cancels; Resume starts the next interval.
func (engine *Engine) ResetTimer() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.resetTimerLocked()
}

// GoTo makes index the active item.
func (engine *Engine) GoTo(index int) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.goToLocked(index, false)
}

// Next advances to the following item, wrapping to the first.
func (engine *Engine) Next() error {
	return engine.step(1, false)
}

// Previous moves to the preceding item, wrapping to the last.
func (engine *Engine) Previous() error {
	return engine.step(-1, false)
}

// JumpTo is GoTo followed by ResetTimer as one step.
func (engine *Engine) JumpTo(index int) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if err := engine.goToLocked(index, true); err != nil {
		return err
	}
	engine.resetTimerLocked()
	return nil
}

// StepForward is Next followed by ResetTimer as one step.
func (engine *Engine) StepForward() error {
	return engine.step(1, true)
}

// StepBack is Previous followed by ResetTimer as one step.
func (engine *Engine) StepBack() error {
	return engine.step(-1, true)
}

// Close stops the timer and closes observers. The engine stays inert afterwards.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.state == StateClosed {
		engine.mu.Unlock()
		return
	}
	engine.stopTimerLocked()
	if engine.clearTimer != nil {
		engine.clearTimer.Stop()
		engine.clearTimer = nil
	}
	engine.state = StateClosed
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	engine.wg.Wait()
	for _, ch := range events {
		close(ch)
	}
}

// State returns the current mode.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Current returns the active index.
func (engine *Engine) Current() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.current
}

// Leaving returns the item still animating out, if any.
func (engine *Engine) Leaving() (int, bool) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.leaving, engine.leaving >= 0
}

// ItemStates returns a snapshot of every item marking.
func (engine *Engine) ItemStates() []ItemState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return append([]ItemState(nil), engine.items...)
}

// TimerActive reports whether an automatic timer is live.
func (engine *Engine) TimerActive() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.stopTick != nil
}

// TimerGeneration counts the automatic timers started so far.
func (engine *Engine) TimerGeneration() uint64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.generation
}

func (engine *Engine) step(delta int, manual bool) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if err := engine.commandableLocked(); err != nil {
		return err
	}
	next := model.Wrap(engine.current+delta, len(engine.items))
	if err := engine.goToLocked(next, manual); err != nil {
		return err
	}
	if manual {
		engine.resetTimerLocked()
	}
	return nil
}

func (engine *Engine) commandableLocked() error {
	switch engine.state {
	case StateClosed:
		return ErrClosed
	case StateIdle:
		return ErrIdle
	}
	return nil
}

func (engine *Engine) goToLocked(index int, manual bool) error {
	if err := engine.commandableLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(engine.items) {
		return fmt.Errorf("%w: %s: %d not in [0, %d)", ErrIndexOutOfRange, engine.config.Name, index, len(engine.items))
	}
	if index == engine.current {
		return nil
	}

	previous := engine.current
	engine.clearLeavingLocked()

	engine.setItemLocked(previous, ItemLeaving)
	engine.setIndicatorLocked(previous, false)
	engine.current = index
	engine.setItemLocked(index, ItemActive)
	engine.setIndicatorLocked(index, true)
	engine.leaving = previous

	engine.clearTimer = engine.options.Clock.AfterFunc(engine.config.TransitionDuration, engine.clearLeaving)

	engine.options.Logger.Debug("rotation moved",
		zap.String("rotation", engine.config.Name),
		zap.Int("from", previous),
		zap.Int("to", index),
		zap.Bool("manual", manual))
	engine.emitLocked(Event{
		Type:     EventTransition,
		State:    engine.state,
		Index:    index,
		Previous: previous,
		Manual:   manual,
	})
	return nil
}

// clearLeaving drops every leaving mark, not just the last one, so a late
// callback from an earlier transition never leaves stale state behind.
func (engine *Engine) clearLeaving() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateClosed {
		return
	}
	engine.clearLeavingLocked()
}

func (engine *Engine) clearLeavingLocked() {
	for index, state := range engine.items {
		if state == ItemLeaving {
			engine.setItemLocked(index, ItemInactive)
		}
	}
	engine.leaving = -1
}

func (engine *Engine) resetTimerLocked() {
	switch engine.state {
	case StateRunning:
		engine.startTimerLocked()
	case StatePaused:
		engine.stopTimerLocked()
	default:
		return
	}
	engine.emitLocked(Event{Type: EventTimerReset, State: engine.state, Index: engine.current})
}

// startTimerLocked replaces any live timer; there is never more than one.
func (engine *Engine) startTimerLocked() {
	engine.stopTimerLocked()
	engine.generation++
	ticker := engine.options.Clock.Ticker(engine.config.Interval)
	stop := make(chan struct{})
	engine.ticker = ticker
	engine.stopTick = stop

	engine.wg.Add(1)
	go engine.run(ticker, stop, engine.generation)
}

func (engine *Engine) stopTimerLocked() {
	if engine.stopTick == nil {
		return
	}
	engine.ticker.Stop()
	close(engine.stopTick)
	engine.ticker = nil
	engine.stopTick = nil
}

func (engine *Engine) run(ticker *clock.Ticker, stop <-chan struct{}, generation uint64) {
	defer engine.wg.Done()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			engine.tick(generation)
		}
	}
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	// A tick that raced a reset belongs to a timer that no longer exists.
	if generation != engine.generation || engine.state != StateRunning {
		return
	}
	next := model.Wrap(engine.current+1, len(engine.items))
	if err := engine.goToLocked(next, false); err != nil {
		engine.options.Logger.Warn("automatic advance failed",
			zap.String("rotation", engine.config.Name),
			zap.Error(err))
	}
}

func (engine *Engine) setItemLocked(index int, state ItemState) {
	engine.items[index] = state
	sink := engine.sink
	engine.options.Dispatch(func() {
		sink.SetItemState(index, state)
	})
}

func (engine *Engine) setIndicatorLocked(index int, active bool) {
	if index >= engine.indicators {
		return
	}
	sink := engine.sink
	engine.options.Dispatch(func() {
		sink.SetIndicator(index, active)
	})
}

func (engine *Engine) emitLocked(event Event) {
	event.Rotation = engine.config.Name
	event.At = engine.options.Clock.Now()
	events := append([]chan Event(nil), engine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
