package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio/internal/core/model"
	"portfolio/internal/logging"
	"portfolio/internal/platform"
	"portfolio/internal/storage"
	"portfolio/internal/ui/page"
	"portfolio/internal/ui/preferences"
	"portfolio/internal/ui/toast"
	"portfolio/internal/ui/tray"
	"portfolio/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	appName = "Portfolio"
	appID   = "com.portfolio.showcase"

	settingsNotSaved = "Settings could not be saved."
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	started := time.Now()

	contentFlag := flag.String("content", os.Getenv("PORTFOLIO_CONTENT"), "portfolio content YAML (default: bundled content)")
	debugFlag := flag.Bool("debug", os.Getenv("PORTFOLIO_DEBUG") == "1", "enable debug logging")
	flag.Parse()

	logger, err := logging.New(*debugFlag)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	instance, err := platform.AcquireInstance(appName, logger)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("showcase already open", zap.Error(err))
			return nil
		}
		return err
	}
	defer func() {
		_ = instance.Release()
	}()

	store, err := storage.NewSettingsStore(appName)
	if err != nil {
		return err
	}
	settings, err := store.Load()
	if err != nil {
		logger.Warn("settings unreadable, using defaults", zap.String("path", store.Path()), zap.Error(err))
	}
	if *contentFlag != "" {
		settings.ContentPath = *contentFlag
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon("app"))
	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(1100, 800))
	window.SetMaster()

	shell := &showcase{window: window, settings: settings, logger: logger}
	shell.mount()
	defer shell.close()

	instance.Serve(func() {
		fyne.Do(shell.show)
	})

	lifecycle := fyneApp.Lifecycle()
	lifecycle.SetOnStarted(func() {
		logger.Info("Page loaded", zap.Duration("elapsed", time.Since(started)))
	})
	lifecycle.SetOnEnteredForeground(func() {
		logger.Info("Page is visible")
	})
	lifecycle.SetOnExitedForeground(func() {
		logger.Info("Page is hidden")
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		shell.applySettings(updated, store.Save)
	})

	if settings.ContentPath != "" {
		watcher, err := storage.NewWatcher(settings.ContentPath, func() {
			fyne.Do(shell.remount)
		}, storage.WatcherOptions{Logger: logger})
		if err != nil {
			logger.Warn("content reload disabled", zap.Error(err))
		} else if err := watcher.Start(context.Background()); err != nil {
			logger.Warn("content reload disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		shell.attachTray(desktopApp, prefsWindow, fyneApp)
	}

	window.ShowAndRun()
	return nil
}

// showcase owns the mounted page and swaps it when content or settings change.
// All methods run on the UI thread.
type showcase struct {
	window    fyne.Window
	settings  preferences.Settings
	logger    *zap.Logger
	portfolio model.Portfolio
	page      *page.Page
	tray      *tray.Manager
	paused    bool
}

func (shell *showcase) mount() {
	portfolio, loadErr := storage.LoadPortfolio(shell.settings.ContentPath)
	if loadErr != nil {
		shell.logger.Warn("portfolio content unreadable, showing bundled content",
			zap.String("path", shell.settings.ContentPath),
			zap.Error(loadErr))
	}

	mounted, err := page.Mount(shell.window, portfolio, shell.settings, page.Deps{
		Clock:  clock.New(),
		Logger: shell.logger,
	})
	if err != nil {
		shell.logger.Error("mounting page failed", zap.Error(err))
		return
	}
	shell.page = mounted
	shell.portfolio = portfolio
	if shell.paused {
		mounted.SetPaused(true)
	}
	if loadErr != nil {
		shell.toast("Portfolio content could not be read; showing the bundled version.", toast.SeverityError)
	}
	if shell.tray != nil {
		shell.tray.SetStatus(statusFor(portfolio))
	}
}

func (shell *showcase) remount() {
	defer logging.Recover(shell.logger, "remount")
	shell.close()
	shell.mount()
}

// applySettings saves updated and remounts the page with it. A failed save
// still applies the settings for this session and is reported on the new page.
func (shell *showcase) applySettings(updated preferences.Settings, save func(preferences.Settings) error) {
	err := save(updated)
	shell.settings = updated
	shell.remount()
	if err != nil {
		shell.logger.Error("saving settings failed", zap.Error(err))
		shell.toast(settingsNotSaved, toast.SeverityError)
	}
}

func (shell *showcase) close() {
	if shell.page != nil {
		shell.page.Close()
		shell.page = nil
	}
}

func (shell *showcase) show() {
	shell.window.Show()
	shell.window.RequestFocus()
}

func (shell *showcase) toast(message string, severity toast.Severity) {
	if shell.page != nil {
		shell.page.Toasts().Show(message, severity, 0)
	}
}

func (shell *showcase) setPaused(paused bool) {
	shell.paused = paused
	if shell.page != nil {
		shell.page.SetPaused(paused)
	}
	if shell.tray != nil {
		shell.tray.SetPaused(paused)
	}
}

func (shell *showcase) attachTray(desktopApp desktop.App, prefsWindow *preferences.Window, fyneApp fyne.App) {
	runningIcon := resources.MustIcon("running")
	pausedIcon := resources.MustIcon("paused")

	shell.window.SetCloseIntercept(shell.window.Hide)
	shell.tray = tray.New(desktopApp, tray.Callbacks{
		OnShow: shell.show,
		OnTogglePause: func() {
			shell.setPaused(!shell.paused)
			if shell.paused {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			} else {
				desktopApp.SetSystemTrayIcon(runningIcon)
			}
		},
		OnReload: shell.remount,
		OnPreferences: func() {
			prefsWindow.UpdateSettings(shell.settings)
			prefsWindow.Show()
		},
		OnQuit: fyneApp.Quit,
	})
	desktopApp.SetSystemTrayIcon(runningIcon)
	shell.tray.SetStatus(statusFor(shell.portfolio))
}

func statusFor(portfolio model.Portfolio) string {
	return fmt.Sprintf("%s: %d projects, %d certificates",
		portfolio.Owner, len(portfolio.Projects), len(portfolio.Certificates))
}
