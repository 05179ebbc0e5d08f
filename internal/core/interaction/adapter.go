package interaction

import (
	"errors"
	"sync"
	"sync/atomic"

	"portfolio/internal/core/model"
	"portfolio/internal/core/rotation"
	"portfolio/internal/logging"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// Controller is the subset of rotation.Engine driven by user input.
type Controller interface {
	Name() string
	Pause()
	Resume()
	JumpTo(index int) error
	StepForward() error
	StepBack() error
}

// Direction is the arrow button pressed.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// EditingFunc reports whether a text-input-like element holds focus.
type EditingFunc func() bool

// Adapter turns pointer, tap and key signals into rotation commands.
type Adapter struct {
	controller Controller
	controls   model.Controls
	editing    EditingFunc
	logger     *zap.Logger
	held       atomic.Bool
}

// New creates an adapter for controller using the given bindings.
func New(controller Controller, controls model.Controls, editing EditingFunc, logger *zap.Logger) *Adapter {
	if editing == nil {
		editing = func() bool { return false }
	}
	return &Adapter{
		controller: controller,
		controls:   controls,
		editing:    editing,
		logger:     logging.OrNop(logger).With(zap.String("rotation", controller.Name())),
	}
}

// PointerEntered pauses rotation while the pointer is over the container.
func (adapter *Adapter) PointerEntered() {
	defer logging.Recover(adapter.logger, "pointer entered")
	if adapter.controls.HoverPause {
		adapter.controller.Pause()
	}
}

// PointerExited resumes rotation with a fresh interval unless it is held.
func (adapter *Adapter) PointerExited() {
	defer logging.Recover(adapter.logger, "pointer exited")
	if adapter.controls.HoverPause && !adapter.held.Load() {
		adapter.controller.Resume()
	}
}

// Hold keeps the rotation paused regardless of hover until released.
// Releasing resumes only when pointerInside is false.
func (adapter *Adapter) Hold(held bool, pointerInside bool) {
	defer logging.Recover(adapter.logger, "hold")
	if adapter.held.Swap(held) == held {
		return
	}
	if held {
		adapter.controller.Pause()
		return
	}
	if !pointerInside || !adapter.controls.HoverPause {
		adapter.controller.Resume()
	}
}

// Held reports whether rotation is held paused.
func (adapter *Adapter) Held() bool {
	return adapter.held.Load()
}

// IndicatorTapped jumps to the tapped indicator's item.
func (adapter *Adapter) IndicatorTapped(index int) {
	defer logging.Recover(adapter.logger, "indicator tapped")
	if !adapter.controls.Indicators {
		return
	}
	adapter.report(adapter.controller.JumpTo(index))
}

// ArrowTapped steps one item in the given direction.
func (adapter *Adapter) ArrowTapped(direction Direction) {
	defer logging.Recover(adapter.logger, "arrow tapped")
	if !adapter.controls.Arrows {
		return
	}
	adapter.step(direction)
}

// KeyPressed handles ArrowLeft/ArrowRight and reports whether the key moved the rotation.
func (adapter *Adapter) KeyPressed(key fyne.KeyName) bool {
	defer logging.Recover(adapter.logger, "key pressed")

	var direction Direction
	switch key {
	case fyne.KeyLeft:
		direction = Backward
	case fyne.KeyRight:
		direction = Forward
	default:
		return false
	}

	switch adapter.controls.Keyboard {
	case model.KeyboardGlobal:
	case model.KeyboardUnlessEditing:
		if adapter.editing() {
			return false
		}
	default:
		return false
	}
	return adapter.step(direction)
}

func (adapter *Adapter) step(direction Direction) bool {
	var err error
	if direction == Backward {
		err = adapter.controller.StepBack()
	} else {
		err = adapter.controller.StepForward()
	}
	return adapter.report(err)
}

func (adapter *Adapter) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, rotation.ErrIdle), errors.Is(err, rotation.ErrClosed):
		adapter.logger.Debug("command dropped", zap.Error(err))
	default:
		adapter.logger.Warn("command rejected", zap.Error(err))
	}
	return false
}

// Dispatcher fans window-level key events out to every registered adapter.
type Dispatcher struct {
	mu       sync.Mutex
	adapters []*Adapter
}

// Register adds adapter and returns a function that removes it again.
func (dispatcher *Dispatcher) Register(adapter *Adapter) func() {
	dispatcher.mu.Lock()
	dispatcher.adapters = append(dispatcher.adapters, adapter)
	dispatcher.mu.Unlock()

	return func() {
		dispatcher.mu.Lock()
		defer dispatcher.mu.Unlock()
		for i, registered := range dispatcher.adapters {
			if registered == adapter {
				dispatcher.adapters = append(dispatcher.adapters[:i], dispatcher.adapters[i+1:]...)
				return
			}
		}
	}
}

// TypedKey matches the fyne.Canvas SetOnTypedKey callback.
func (dispatcher *Dispatcher) TypedKey(event *fyne.KeyEvent) {
	if event == nil {
		return
	}
	dispatcher.mu.Lock()
	adapters := append([]*Adapter(nil), dispatcher.adapters...)
	dispatcher.mu.Unlock()

	for _, adapter := range adapters {
		adapter.KeyPressed(event.Name)
	}
}
