package toast

import (
	"image/color"
	"sync"
	"time"

	"portfolio/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// DefaultDuration applies when Show is given a non-positive duration.
	DefaultDuration = 5 * time.Second
	// ExitDuration is how long a dismissed toast stays on screen while it fades out.
	ExitDuration = 300 * time.Millisecond
)

// Severity selects the toast accent.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (severity Severity) String() string {
	switch severity {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

func (severity Severity) colorName() fyne.ThemeColorName {
	switch severity {
	case SeveritySuccess:
		return theme.ColorNameSuccess
	case SeverityError:
		return theme.ColorNameError
	default:
		return theme.ColorNamePrimary
	}
}

func (severity Severity) icon() fyne.Resource {
	switch severity {
	case SeveritySuccess:
		return theme.ConfirmIcon()
	case SeverityError:
		return theme.ErrorIcon()
	default:
		return theme.InfoIcon()
	}
}

// Toast is a single transient alert.
type Toast struct {
	widget.BaseWidget

	manager  *Manager
	message  string
	severity Severity

	accent *canvas.Rectangle
	root   fyne.CanvasObject

	// guarded by manager.mu
	dismissed bool
	autoTimer *clock.Timer
	exitTimer *clock.Timer
}

// Message returns the toast text.
func (toast *Toast) Message() string {
	return toast.message
}

// Severity returns the toast severity.
func (toast *Toast) Severity() Severity {
	return toast.severity
}

// Dismissed reports whether Dismiss has run, manually or by timeout.
func (toast *Toast) Dismissed() bool {
	toast.manager.mu.Lock()
	defer toast.manager.mu.Unlock()
	return toast.dismissed
}

// Dismiss starts the exit fade and removes the toast afterwards.
// Calling it again has no effect.
func (toast *Toast) Dismiss() {
	toast.manager.dismiss(toast)
}

// CreateRenderer implements fyne.Widget.
func (toast *Toast) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(toast.root)
}

func (toast *Toast) build() {
	accentColor := theme.Color(toast.severity.colorName())
	toast.accent = canvas.NewRectangle(withAlpha(accentColor, 230))
	toast.accent.CornerRadius = theme.InputRadiusSize()

	icon := widget.NewIcon(toast.severity.icon())
	label := widget.NewLabel(toast.message)
	label.Wrapping = fyne.TextWrapWord
	closeButton := widget.NewButtonWithIcon("", theme.CancelIcon(), toast.Dismiss)
	closeButton.Importance = widget.LowImportance

	body := container.NewBorder(nil, nil, icon, closeButton, label)
	toast.root = container.NewStack(toast.accent, container.NewPadded(body))
}

func (toast *Toast) fadeOut() {
	start := toast.accent.FillColor
	stop := withAlpha(start, 0)
	fade := canvas.NewColorRGBAAnimation(start, stop, ExitDuration, func(value color.Color) {
		toast.accent.FillColor = value
		toast.accent.Refresh()
	})
	fade.Curve = fyne.AnimationEaseIn
	fade.Start()
}

func withAlpha(value color.Color, alpha uint8) color.NRGBA {
	red, green, blue, _ := value.RGBA()
	return color.NRGBA{R: uint8(red >> 8), G: uint8(green >> 8), B: uint8(blue >> 8), A: alpha}
}

// Options contains runtime collaborators for a Manager.
type Options struct {
	Clock    clock.Clock
	Logger   *zap.Logger
	Dispatch func(func())
}

// Manager stacks toasts in the top-right corner of its layer.
type Manager struct {
	clock    clock.Clock
	logger   *zap.Logger
	dispatch func(func())

	mu     sync.Mutex
	toasts []*Toast
	closed bool

	stack *fyne.Container
	layer *fyne.Container
}

// NewManager creates an empty toast layer.
func NewManager(options Options) *Manager {
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Dispatch == nil {
		options.Dispatch = fyne.Do
	}
	stack := container.NewVBox()
	return &Manager{
		clock:    options.Clock,
		logger:   logging.OrNop(options.Logger),
		dispatch: options.Dispatch,
		stack:    stack,
		layer:    container.New(&cornerLayout{}, stack),
	}
}

// Layer is the canvas object to stack above the page content.
func (manager *Manager) Layer() fyne.CanvasObject {
	return manager.layer
}

// Show displays message and schedules its dismissal.
func (manager *Manager) Show(message string, severity Severity, duration time.Duration) *Toast {
	if duration <= 0 {
		duration = DefaultDuration
	}
	toast := &Toast{manager: manager, message: message, severity: severity}
	toast.ExtendBaseWidget(toast)
	toast.build()

	manager.mu.Lock()
	if manager.closed {
		toast.dismissed = true
		manager.mu.Unlock()
		return toast
	}
	manager.toasts = append(manager.toasts, toast)
	toast.autoTimer = manager.clock.AfterFunc(duration, toast.Dismiss)
	manager.mu.Unlock()

	manager.logger.Debug("toast shown",
		zap.String("severity", severity.String()),
		zap.Duration("duration", duration))
	manager.dispatch(func() {
		manager.stack.Add(toast)
	})
	return toast
}

// Active returns toasts that have not been dismissed yet.
func (manager *Manager) Active() []*Toast {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	active := make([]*Toast, 0, len(manager.toasts))
	for _, toast := range manager.toasts {
		if !toast.dismissed {
			active = append(active, toast)
		}
	}
	return active
}

// Close removes every toast at once and rejects new ones.
func (manager *Manager) Close() {
	manager.mu.Lock()
	if manager.closed {
		manager.mu.Unlock()
		return
	}
	manager.closed = true
	toasts := manager.toasts
	manager.toasts = nil
	for _, toast := range toasts {
		toast.dismissed = true
		stopTimer(toast.autoTimer)
		stopTimer(toast.exitTimer)
	}
	manager.mu.Unlock()

	manager.dispatch(func() {
		manager.stack.RemoveAll()
	})
}

func (manager *Manager) dismiss(toast *Toast) {
	defer logging.Recover(manager.logger, "toast dismiss")

	manager.mu.Lock()
	if toast.dismissed {
		manager.mu.Unlock()
		return
	}
	toast.dismissed = true
	stopTimer(toast.autoTimer)
	toast.exitTimer = manager.clock.AfterFunc(ExitDuration, func() {
		manager.remove(toast)
	})
	manager.mu.Unlock()

	manager.dispatch(toast.fadeOut)
}

func (manager *Manager) remove(toast *Toast) {
	manager.mu.Lock()
	for i, candidate := range manager.toasts {
		if candidate == toast {
			manager.toasts = append(manager.toasts[:i], manager.toasts[i+1:]...)
			break
		}
	}
	manager.mu.Unlock()

	manager.dispatch(func() {
		manager.stack.Remove(toast)
	})
}

func stopTimer(timer *clock.Timer) {
	if timer != nil {
		timer.Stop()
	}
}

const (
	cornerMargin = float32(16)
	toastWidth   = float32(320)
)

// cornerLayout pins its single child to the top-right corner.
type cornerLayout struct{}

func (layout *cornerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	stack := objects[0]
	width := toastWidth
	if width > size.Width-cornerMargin*2 {
		width = size.Width - cornerMargin*2
	}
	if width < 0 {
		width = 0
	}
	height := stack.MinSize().Height
	stack.Move(fyne.NewPos(size.Width-cornerMargin-width, cornerMargin))
	stack.Resize(fyne.NewSize(width, height))
}

func (layout *cornerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
