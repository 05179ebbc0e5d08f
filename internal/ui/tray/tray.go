package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "Portfolio"

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnReload      func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	menu        *fyne.Menu
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("", func() {
		call(manager.callbacks.OnTogglePause)
	})

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	manager.refreshStatus()
}

// Paused reports the pause state shown in the menu.
func (manager *Manager) Paused() bool {
	return manager.paused
}

// Menu returns the menu last handed to the host.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
		manager.pauseItem.Label = "Resume rotations"
	} else {
		manager.pauseItem.Label = "Pause rotations"
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show window", func() {
			call(manager.callbacks.OnShow)
		}),
		manager.pauseItem,
		fyne.NewMenuItem("Reload content", func() {
			call(manager.callbacks.OnReload)
		}),
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
