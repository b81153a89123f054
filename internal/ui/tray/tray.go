// Package tray exposes SorryBot's mode toggles and quick actions in the
// system tray.
package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnApologize     func()
	OnTogglePanic   func()
	OnToggleHoliday func()
	OnToggleSound   func()
	OnPreferences   func()
	OnQuit          func()
}

// State is what the menu reflects.
type State struct {
	Panic   bool
	Holiday bool
	Muted   bool
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	state     State
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}
	manager.refreshMenu()
	return manager
}

// SetState updates the checked items.
func (manager *Manager) SetState(state State) {
	if manager.state == state {
		return
	}
	manager.state = state
	manager.refreshMenu()
}

// Menu builds the tray menu for the current state.
func (manager *Manager) Menu() *fyne.Menu {
	show := fyne.NewMenuItem("Show SorryBot", call(manager.callbacks.OnShow))
	apologize := fyne.NewMenuItem("Apologize now", call(manager.callbacks.OnApologize))

	panicItem := fyne.NewMenuItem("Panic mode", call(manager.callbacks.OnTogglePanic))
	panicItem.Checked = manager.state.Panic

	holidayItem := fyne.NewMenuItem("Holiday mode", call(manager.callbacks.OnToggleHoliday))
	holidayItem.Checked = manager.state.Holiday
	// Panic overrides the holiday look; the flag itself is kept.
	holidayItem.Disabled = manager.state.Panic && !manager.state.Holiday

	sound := fyne.NewMenuItem("Sound", call(manager.callbacks.OnToggleSound))
	sound.Checked = !manager.state.Muted

	preferences := fyne.NewMenuItem("Preferences", call(manager.callbacks.OnPreferences))
	quit := fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit))
	quit.IsQuit = true

	return fyne.NewMenu("SorryBot",
		show,
		apologize,
		fyne.NewMenuItemSeparator(),
		panicItem,
		holidayItem,
		sound,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
