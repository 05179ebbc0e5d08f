// Package page composes the showcase window: navbar, hero, the three rotating
// sections, contact form and footer. A Page owns every timer it starts and
// releases them in Close, so the window can be remounted with fresh content.
package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"portfolio/internal/core/interaction"
	"portfolio/internal/core/model"
	"portfolio/internal/core/navigation"
	"portfolio/internal/logging"
	"portfolio/internal/ui/animation"
	"portfolio/internal/ui/carousel"
	"portfolio/internal/ui/imageload"
	"portfolio/internal/ui/lightbox"
	"portfolio/internal/ui/preferences"
	"portfolio/internal/ui/toast"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// WelcomeDelay is how long after mounting the welcome toast appears.
	WelcomeDelay = 2 * time.Second
	// WelcomeDuration is how long the welcome toast stays up.
	WelcomeDuration = 8 * time.Second
	// WelcomeMessage greets the visitor once the page has settled.
	WelcomeMessage = "Welcome to my portfolio! Explore my skills, projects, and certificates."
)

// ErrNilWindow is returned when Mount has nowhere to draw.
var ErrNilWindow = errors.New("page needs a window")

// Deps contains runtime collaborators for a Page.
type Deps struct {
	Clock    clock.Clock
	Logger   *zap.Logger
	Dispatch func(func())
	Reveal   animation.Config
}

// Page is one mounted rendition of the portfolio.
type Page struct {
	window    fyne.Window
	portfolio model.Portfolio
	settings  preferences.Settings
	clock     clock.Clock
	logger    *zap.Logger
	dispatch  func(func())

	ctx    context.Context
	cancel context.CancelFunc

	toasts     *toast.Manager
	images     *imageload.Tracker
	reveal     *animation.Engine
	lightbox   *lightbox.Viewer
	menu       *navigation.Menu
	dispatcher interaction.Dispatcher
	carousels  map[string]*carousel.Carousel
	unregister []func()

	layout  *layoutParts
	welcome *clock.Timer

	closeOnce sync.Once
}

// Mount renders portfolio into window and starts its carousels.
func Mount(window fyne.Window, portfolio model.Portfolio, settings preferences.Settings, deps Deps) (*Page, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Dispatch == nil {
		deps.Dispatch = fyne.Do
	}
	if deps.Reveal == (animation.Config{}) {
		deps.Reveal = animation.DefaultConfig()
	}
	logger := logging.OrNop(deps.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	page := &Page{
		window:    window,
		portfolio: portfolio,
		settings:  settings,
		clock:     deps.Clock,
		logger:    logger,
		dispatch:  deps.Dispatch,
		ctx:       ctx,
		cancel:    cancel,
		toasts:    toast.NewManager(toast.Options{Clock: deps.Clock, Logger: logger, Dispatch: deps.Dispatch}),
		images:    imageload.NewTracker(logger, deps.Dispatch),
		carousels: make(map[string]*carousel.Carousel),
	}
	page.lightbox = lightbox.New(portfolio.Certificates, window, page.loadImage)
	page.menu = navigation.NewMenu(page.menuChanged)

	if err := page.build(deps.Reveal); err != nil {
		page.Close()
		return nil, err
	}

	window.SetContent(page.layout.root)
	window.Canvas().SetOnTypedKey(page.typedKey)

	for _, name := range []string{model.SkillsName, model.ProjectsName, model.CertificatesName} {
		page.carousels[name].Start()
	}
	page.reveal.Start(ctx, len(page.layout.heroVeils))
	if settings.WelcomeToast {
		page.welcome = page.clock.AfterFunc(WelcomeDelay, func() {
			page.toasts.Show(WelcomeMessage, toast.SeverityInfo, WelcomeDuration)
		})
	}

	logger.Info("Portfolio initialized", zap.String("owner", portfolio.Owner))
	return page, nil
}

// Close stops every carousel, animation, toast and pending image load.
// The window content is left in place for the next Mount to replace.
func (page *Page) Close() {
	page.closeOnce.Do(func() {
		page.cancel()
		if page.welcome != nil {
			page.welcome.Stop()
		}
		for _, unregister := range page.unregister {
			unregister()
		}
		for _, rotator := range page.carousels {
			rotator.Close()
		}
		if page.reveal != nil {
			page.reveal.Stop()
		}
		page.toasts.Close()
		page.images.Wait()
		if page.layout != nil {
			page.lightbox.Close()
			page.window.Canvas().SetOnTypedKey(nil)
		}
		page.logger.Debug("page closed")
	})
}

// Carousel returns the carousel registered under name.
func (page *Page) Carousel(name string) (*carousel.Carousel, bool) {
	rotator, ok := page.carousels[name]
	return rotator, ok
}

// SetPaused holds or releases every carousel at once. While held, moving
// the pointer off a carousel does not resume it.
func (page *Page) SetPaused(paused bool) {
	for _, rotator := range page.carousels {
		rotator.SetHeld(paused)
	}
}

// Toasts exposes the page's alert layer.
func (page *Page) Toasts() *toast.Manager {
	return page.toasts
}

// Images exposes the image-load tracker.
func (page *Page) Images() *imageload.Tracker {
	return page.images
}

// Lightbox exposes the certificate viewer.
func (page *Page) Lightbox() *lightbox.Viewer {
	return page.lightbox
}

// Menu exposes the compact navigation menu state.
func (page *Page) Menu() *navigation.Menu {
	return page.menu
}

func (page *Page) typedKey(event *fyne.KeyEvent) {
	defer logging.Recover(page.logger, "key")
	if event == nil {
		return
	}
	if page.lightbox.HandleKey(event.Name) {
		return
	}
	if page.menu.HandleKey(event.Name) {
		return
	}
	page.dispatcher.TypedKey(event)
}

// editing reports whether a text input has keyboard focus.
func (page *Page) editing() bool {
	switch page.window.Canvas().Focused().(type) {
	case *widget.Entry, *widget.SelectEntry:
		return true
	}
	return false
}

func (page *Page) loadImage(img *canvas.Image, uri string) {
	page.images.Load(page.ctx, img, uri)
}

func (page *Page) newCarousel(config model.RotationConfig, items []fyne.CanvasObject, hover *carousel.HoverZone) (*carousel.Carousel, error) {
	rotator, err := carousel.New(config, items, carousel.Options{
		Clock:    page.clock,
		Logger:   page.logger,
		Editing:  page.editing,
		Dispatch: page.dispatch,
		Hover:    hover,
	})
	if err != nil {
		return nil, err
	}
	page.carousels[config.Name] = rotator
	page.unregister = append(page.unregister, page.dispatcher.Register(rotator.Adapter()))
	return rotator, nil
}
