package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/session"
	"pomodoro/resources"
)

const menuTitle = "Pomodoro"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnPause       func()
	OnStop        func()
	OnPreferences func()
	OnSound       func(enabled bool)
	OnReload      func()
	OnReset       func()
	OnSave        func()
	OnQuit        func()
}

// Manager handles system tray state. Methods must be called on the Fyne thread.
type Manager struct {
	app       desktop.App
	callbacks Callbacks

	statusItem *fyne.MenuItem
	timerItem  *fyne.MenuItem
	phaseItem  *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	soundItem  *fyne.MenuItem
	reloadItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	saveItem   *fyne.MenuItem
	items      []*fyne.MenuItem

	icon string
}

// New creates a tray manager with the provided callbacks. app may be nil when
// no system tray is available; the menu state is still tracked.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = disabledItem("Status: Stopped")
	manager.timerItem = disabledItem("00 : 00 : 00")
	manager.phaseItem = disabledItem("")

	manager.startItem = fyne.NewMenuItem("Start", call(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", call(&manager.callbacks.OnPause))
	manager.stopItem = fyne.NewMenuItem("Stop", call(&manager.callbacks.OnStop))

	manager.soundItem = fyne.NewMenuItem("Sound", nil)
	manager.soundItem.Action = func() {
		if manager.callbacks.OnSound != nil {
			manager.callbacks.OnSound(!manager.soundItem.Checked)
		}
	}

	manager.reloadItem = fyne.NewMenuItem("Reload configuration", call(&manager.callbacks.OnReload))
	manager.resetItem = fyne.NewMenuItem("Reset configuration", call(&manager.callbacks.OnReset))
	manager.saveItem = fyne.NewMenuItem("Save configuration", call(&manager.callbacks.OnSave))

	preferences := fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences))
	quit := fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit))
	quit.IsQuit = true

	manager.items = []*fyne.MenuItem{
		manager.statusItem,
		manager.timerItem,
		manager.phaseItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		manager.soundItem,
		manager.reloadItem,
		manager.resetItem,
		manager.saveItem,
		fyne.NewMenuItemSeparator(),
		quit,
	}

	manager.Update(session.Status{})
	return manager
}

func disabledItem(label string) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, nil)
	item.Disabled = true
	return item
}

// call defers the lookup so callbacks can be replaced after New.
func call(action *func()) func() {
	return func() {
		if *action != nil {
			(*action)()
		}
	}
}

// Update refreshes labels, enabled items and the tray icon from a session status.
func (manager *Manager) Update(status session.Status) {
	state := status.State
	manager.statusItem.Label = fmt.Sprintf("Status: %s", state)
	manager.timerItem.Label = timerLabel(status)
	manager.phaseItem.Label = status.PhaseLabel()

	manager.startItem.Label = StartLabel(state)
	manager.startItem.Disabled = state == timekeeper.StateRunning
	manager.pauseItem.Disabled = state != timekeeper.StateRunning
	manager.stopItem.Disabled = state == timekeeper.StateStopped

	manager.soundItem.Checked = status.SoundEnabled

	locked := !status.Editable()
	manager.reloadItem.Disabled = locked
	manager.resetItem.Disabled = locked

	manager.setIcon(IconFor(state))
	manager.refreshMenu()
}

// StartLabel names the start action for a state.
func StartLabel(state timekeeper.State) string {
	if state == timekeeper.StatePaused {
		return "Resume"
	}
	return "Start"
}

// IconFor picks the tray icon for a state.
func IconFor(state timekeeper.State) string {
	switch state {
	case timekeeper.StateRunning:
		return resources.IconRunning
	case timekeeper.StatePaused:
		return resources.IconPaused
	default:
		return resources.IconStopped
	}
}

func timerLabel(status session.Status) string {
	if status.TimerText == "" {
		return timekeeper.FormatRemaining(0)
	}
	return status.TimerText
}

func (manager *Manager) setIcon(name string) {
	if manager.icon == name {
		return
	}
	manager.icon = name
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(resources.MustIcon(name))
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, manager.items...))
	}
}
