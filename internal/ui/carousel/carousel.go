package carousel

import (
	"fmt"
	"image/color"
	"sync"

	"portfolio/internal/core/interaction"
	"portfolio/internal/core/model"
	"portfolio/internal/core/rotation"
	"portfolio/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Options contains runtime collaborators for a Carousel.
type Options struct {
	Clock    clock.Clock
	Logger   *zap.Logger
	Editing  interaction.EditingFunc
	Dispatch func(func())
	// Hover is the zone the items' own buttons and links were built with.
	// Nil gives the carousel a zone of its own.
	Hover *HoverZone
}

// Carousel shows one item at a time with dots and optional arrows.
type Carousel struct {
	widget.BaseWidget

	config  model.RotationConfig
	engine  *rotation.Engine
	adapter *interaction.Adapter
	logger  *zap.Logger

	hover *HoverZone

	mu        sync.Mutex
	items     []fyne.CanvasObject
	states    []rotation.ItemState
	veils     []*canvas.Rectangle
	fades     []*fyne.Animation
	slots     []fyne.CanvasObject
	viewport  *fyne.Container
	dots      []*ZoneButton
	dotActive []bool
	prev      *ZoneButton
	next      *ZoneButton
	root      fyne.CanvasObject
}

var _ desktop.Hoverable = (*Carousel)(nil)
var _ rotation.Sink = (*Carousel)(nil)

// New builds a carousel over items. One item or none gives an inert carousel.
func New(config model.RotationConfig, items []fyne.CanvasObject, options Options) (*Carousel, error) {
	if options.Dispatch == nil {
		options.Dispatch = fyne.Do
	}
	if options.Hover == nil {
		options.Hover = NewHoverZone()
	}
	logger := logging.OrNop(options.Logger).With(zap.String("rotation", config.Name))

	carousel := &Carousel{
		config: config,
		logger: logger,
		hover:  options.Hover,
		items:  items,
		states: make([]rotation.ItemState, len(items)),
		veils:  make([]*canvas.Rectangle, len(items)),
		fades:  make([]*fyne.Animation, len(items)),
		slots:  make([]fyne.CanvasObject, len(items)),
	}
	carousel.ExtendBaseWidget(carousel)

	for i, item := range items {
		item.Hide()
		carousel.veils[i] = canvas.NewRectangle(color.Transparent)
		carousel.slots[i] = container.NewStack(item, carousel.veils[i])
	}

	// The engine tracks one indicator per item even when dots are not drawn.
	indicators := 0
	if len(items) > 1 {
		indicators = len(items)
	}
	carousel.buildControls(len(items), config.Controls)

	// Initial marks are applied inline; the window may not be running yet.
	mounting := true
	dispatch := func(fn func()) {
		if mounting {
			fn()
			return
		}
		options.Dispatch(fn)
	}
	engine, err := rotation.New(config, len(items), indicators, carousel, rotation.Options{
		Clock:    options.Clock,
		Logger:   logger,
		Dispatch: dispatch,
	})
	mounting = false
	if err != nil {
		return nil, fmt.Errorf("mount %s carousel: %w", config.Name, err)
	}
	carousel.engine = engine
	carousel.adapter = interaction.New(engine, config.Controls, options.Editing, logger)
	carousel.hover.bind(carousel.adapter, options.Dispatch)
	carousel.wireControls()
	carousel.root = carousel.layout()
	return carousel, nil
}

// Start begins automatic rotation and reports whether the carousel is active.
func (carousel *Carousel) Start() bool {
	carousel.engine.Start()
	active := carousel.engine.State() == rotation.StateRunning
	status := "Inactive"
	if active {
		status = "Active"
	}
	carousel.logger.Info("Rotator "+status, zap.Int("items", carousel.engine.Len()))
	return active
}

// SetHeld keeps the carousel paused regardless of hover, e.g. while the
// whole page is paused. Releasing it resumes unless the pointer is inside.
func (carousel *Carousel) SetHeld(held bool) {
	carousel.adapter.Hold(held, carousel.hover.Inside())
}

// Hover returns the zone that decides whether the pointer is over the carousel.
func (carousel *Carousel) Hover() *HoverZone {
	return carousel.hover
}

// Close stops the carousel's timers.
func (carousel *Carousel) Close() {
	carousel.engine.Close()
}

// Engine exposes the rotation state machine.
func (carousel *Carousel) Engine() *rotation.Engine {
	return carousel.engine
}

// Adapter exposes the input bindings, e.g. for window-level key dispatch.
func (carousel *Carousel) Adapter() *interaction.Adapter {
	return carousel.adapter
}

// ItemState returns the marking last applied to item index.
func (carousel *Carousel) ItemState(index int) rotation.ItemState {
	carousel.mu.Lock()
	defer carousel.mu.Unlock()
	return carousel.states[index]
}

// IndicatorActive reports whether dot index is highlighted.
func (carousel *Carousel) IndicatorActive(index int) bool {
	carousel.mu.Lock()
	defer carousel.mu.Unlock()
	if index >= len(carousel.dotActive) {
		return false
	}
	return carousel.dotActive[index]
}

// SetItemState implements rotation.Sink.
func (carousel *Carousel) SetItemState(index int, state rotation.ItemState) {
	carousel.mu.Lock()
	carousel.states[index] = state
	item := carousel.items[index]
	veil := carousel.veils[index]
	if fade := carousel.fades[index]; fade != nil {
		fade.Stop()
		carousel.fades[index] = nil
	}
	carousel.mu.Unlock()

	switch state {
	case rotation.ItemActive:
		setFill(veil, color.Transparent)
		item.Show()
		carousel.raise()
	case rotation.ItemLeaving:
		// The outgoing item stays under the active one and fades out there.
		item.Show()
		carousel.fadeOut(index)
	default:
		item.Hide()
		setFill(veil, color.Transparent)
	}
}

// SetIndicator implements rotation.Sink.
func (carousel *Carousel) SetIndicator(index int, active bool) {
	carousel.mu.Lock()
	if index >= len(carousel.dots) {
		carousel.mu.Unlock()
		return
	}
	dot := carousel.dots[index]
	carousel.dotActive[index] = active
	carousel.mu.Unlock()

	if active {
		dot.Importance = widget.HighImportance
		dot.SetIcon(theme.RadioButtonCheckedIcon())
	} else {
		dot.Importance = widget.LowImportance
		dot.SetIcon(theme.RadioButtonIcon())
	}
	dot.Refresh()
}

// MouseIn pauses rotation while hovered.
func (carousel *Carousel) MouseIn(*desktop.MouseEvent) {
	carousel.hover.enter()
}

// MouseMoved is required by desktop.Hoverable.
func (carousel *Carousel) MouseMoved(*desktop.MouseEvent) {}

// MouseOut resumes rotation with a fresh interval once the pointer has left
// the carousel and every control inside it.
func (carousel *Carousel) MouseOut() {
	carousel.hover.leave()
}

// CreateRenderer implements fyne.Widget.
func (carousel *Carousel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(carousel.root)
}

func (carousel *Carousel) buildControls(count int, controls model.Controls) {
	if count <= 1 {
		return
	}
	if controls.Indicators {
		carousel.dots = make([]*ZoneButton, count)
		carousel.dotActive = make([]bool, count)
		for i := range carousel.dots {
			dot := carousel.hover.Button("", theme.RadioButtonIcon(), nil)
			dot.Importance = widget.LowImportance
			carousel.dots[i] = dot
		}
	}
	if controls.Arrows {
		carousel.prev = carousel.hover.Button("", theme.NavigateBackIcon(), nil)
		carousel.next = carousel.hover.Button("", theme.NavigateNextIcon(), nil)
	}
}

func (carousel *Carousel) wireControls() {
	for i, dot := range carousel.dots {
		index := i
		dot.OnTapped = func() {
			carousel.adapter.IndicatorTapped(index)
		}
	}
	if carousel.prev != nil {
		carousel.prev.OnTapped = func() {
			carousel.adapter.ArrowTapped(interaction.Backward)
		}
	}
	if carousel.next != nil {
		carousel.next.OnTapped = func() {
			carousel.adapter.ArrowTapped(interaction.Forward)
		}
	}
}

func (carousel *Carousel) layout() fyne.CanvasObject {
	carousel.mu.Lock()
	viewport := container.NewStack(carousel.slotOrderLocked()...)
	carousel.viewport = viewport
	carousel.mu.Unlock()

	controls := []fyne.CanvasObject{layout.NewSpacer()}
	for _, dot := range carousel.dots {
		controls = append(controls, dot)
	}
	controls = append(controls, layout.NewSpacer())

	if carousel.prev != nil {
		controls = append([]fyne.CanvasObject{carousel.prev}, controls...)
		controls = append(controls, carousel.next)
	}
	if len(controls) == 2 {
		return viewport
	}
	return container.NewBorder(nil, container.NewHBox(controls...), nil, nil, viewport)
}

// slotOrderLocked puts the active item on top so a leaving one fades out beneath it.
func (carousel *Carousel) slotOrderLocked() []fyne.CanvasObject {
	order := make([]fyne.CanvasObject, 0, len(carousel.slots))
	var active fyne.CanvasObject
	for i, slot := range carousel.slots {
		if carousel.states[i] == rotation.ItemActive {
			active = slot
			continue
		}
		order = append(order, slot)
	}
	if active != nil {
		order = append(order, active)
	}
	return order
}

func (carousel *Carousel) raise() {
	carousel.mu.Lock()
	viewport := carousel.viewport
	if viewport == nil {
		carousel.mu.Unlock()
		return
	}
	viewport.Objects = carousel.slotOrderLocked()
	carousel.mu.Unlock()
	viewport.Refresh()
}

func (carousel *Carousel) fadeOut(index int) {
	background := theme.Color(theme.ColorNameBackground)
	red, green, blue, _ := background.RGBA()
	stop := color.NRGBA{R: uint8(red >> 8), G: uint8(green >> 8), B: uint8(blue >> 8), A: 255}
	start := color.NRGBA{R: stop.R, G: stop.G, B: stop.B, A: 0}

	veil := carousel.veils[index]
	fade := canvas.NewColorRGBAAnimation(start, stop, carousel.config.TransitionDuration, func(value color.Color) {
		setFill(veil, value)
	})
	fade.Curve = fyne.AnimationEaseOut

	carousel.mu.Lock()
	carousel.fades[index] = fade
	carousel.mu.Unlock()
	fade.Start()
}

func setFill(rect *canvas.Rectangle, fill color.Color) {
	rect.FillColor = fill
	rect.Refresh()
}
