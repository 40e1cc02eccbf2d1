package preferences

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/session"
)

// Actions are invoked from button handlers. They may block, so the window runs
// them off the Fyne thread.
type Actions struct {
	OnApply  func(Settings) error
	OnSound  func(enabled bool) error
	OnReload func() error
	OnReset  func() error
	OnSave   func() error
}

type clockEditor struct {
	hours   *widget.Entry
	minutes *widget.Entry
	seconds *widget.Entry
}

func newClockEditor() clockEditor {
	return clockEditor{
		hours:   newNumberEntry("h"),
		minutes: newNumberEntry("m"),
		seconds: newNumberEntry("s"),
	}
}

func (editor clockEditor) row(label string) fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel(label),
		layout.NewSpacer(),
		editor.hours, widget.NewLabel(":"),
		editor.minutes, widget.NewLabel(":"),
		editor.seconds,
	)
}

func (editor clockEditor) set(clock Clock) {
	editor.hours.SetText(strconv.Itoa(clock.Hours))
	editor.minutes.SetText(strconv.Itoa(clock.Minutes))
	editor.seconds.SetText(strconv.Itoa(clock.Seconds))
}

func (editor clockEditor) parse() (Clock, error) {
	return ParseClock(editor.hours.Text, editor.minutes.Text, editor.seconds.Text)
}

func (editor clockEditor) setEnabled(enabled bool) {
	for _, entry := range []*widget.Entry{editor.hours, editor.minutes, editor.seconds} {
		if enabled {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}
}

func newNumberEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// Window handles the preferences UI. Methods must be called on the Fyne thread.
type Window struct {
	window    fyne.Window
	actions   Actions
	state     *widget.Label
	timer     *widget.Label
	phase     *widget.Label
	working   clockEditor
	shortRest clockEditor
	longRest  clockEditor
	cycles    *widget.Entry
	sound     *widget.Check
	apply     *widget.Button
	reload    *widget.Button
	reset     *widget.Button
	editable  bool
	dirty     bool
}

// New creates a preferences window.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:    window,
		actions:   actions,
		state:     widget.NewLabelWithStyle("Stopped", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		timer:     widget.NewLabelWithStyle("00 : 00 : 00", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true, Bold: true}),
		phase:     widget.NewLabel(""),
		working:   newClockEditor(),
		shortRest: newClockEditor(),
		longRest:  newClockEditor(),
		cycles:    newNumberEntry("cycles"),
	}
	prefs.sound = widget.NewCheck("Play a sound with notifications", func(enabled bool) {
		prefs.run(func() error {
			if prefs.actions.OnSound == nil {
				return nil
			}
			return prefs.actions.OnSound(enabled)
		})
	})
	for _, entry := range prefs.entries() {
		entry.OnChanged = func(string) { prefs.dirty = true }
	}

	prefs.apply = widget.NewButton("Apply", prefs.handleApply)
	prefs.reload = widget.NewButton("Reload", func() {
		prefs.confirm("Reload configuration", "Discard unsaved changes and reload the saved configuration?", prefs.actions.OnReload)
	})
	prefs.reset = widget.NewButton("Reset", func() {
		prefs.confirm("Reset configuration", "Restore the factory configuration?", prefs.actions.OnReset)
	})
	save := widget.NewButton("Save", func() {
		prefs.run(prefs.actions.OnSave)
	})
	closeButton := widget.NewButton("Close", window.Hide)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Status", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(prefs.state, layout.NewSpacer(), prefs.phase),
		prefs.timer,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Durations (editable while stopped)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.working.row("Working time"),
		prefs.shortRest.row("Short rest"),
		prefs.longRest.row("Long rest"),
		container.NewHBox(widget.NewLabel("Cycles before a long rest"), layout.NewSpacer(), prefs.cycles),
		prefs.sound,
	)

	buttons := container.NewHBox(prefs.apply, prefs.reload, prefs.reset, save, layout.NewSpacer(), closeButton)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(460, 400))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Parent returns the underlying window, for dialogs owned by other components.
func (prefs *Window) Parent() fyne.Window {
	return prefs.window
}

// Update refreshes the window from a session status. Editors are only enabled
// while the timer is stopped, and pending edits are kept until applied.
func (prefs *Window) Update(status session.Status) {
	prefs.state.SetText(status.State.String())
	prefs.timer.SetText(status.TimerText)
	prefs.phase.SetText(status.PhaseLabel())

	editable := status.Editable()
	if !prefs.dirty || editable != prefs.editable {
		prefs.fill(FromConfig(status.Config, status.SoundEnabled))
	}
	if prefs.sound.Checked != status.SoundEnabled {
		prefs.sound.Checked = status.SoundEnabled
		prefs.sound.Refresh()
	}
	prefs.setEditable(editable)
}

func (prefs *Window) fill(settings Settings) {
	prefs.working.set(settings.Working)
	prefs.shortRest.set(settings.ShortRest)
	prefs.longRest.set(settings.LongRest)
	prefs.cycles.SetText(strconv.Itoa(settings.CycleCount))
	prefs.dirty = false
}

func (prefs *Window) setEditable(editable bool) {
	prefs.editable = editable
	prefs.working.setEnabled(editable)
	prefs.shortRest.setEnabled(editable)
	prefs.longRest.setEnabled(editable)
	for _, button := range []*widget.Button{prefs.apply, prefs.reload, prefs.reset} {
		if editable {
			button.Enable()
		} else {
			button.Disable()
		}
	}
	if editable {
		prefs.cycles.Enable()
	} else {
		prefs.cycles.Disable()
	}
}

func (prefs *Window) entries() []*widget.Entry {
	return []*widget.Entry{
		prefs.working.hours, prefs.working.minutes, prefs.working.seconds,
		prefs.shortRest.hours, prefs.shortRest.minutes, prefs.shortRest.seconds,
		prefs.longRest.hours, prefs.longRest.minutes, prefs.longRest.seconds,
		prefs.cycles,
	}
}

func (prefs *Window) handleApply() {
	settings, err := prefs.readForm()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.dirty = false
	prefs.run(func() error {
		if prefs.actions.OnApply == nil {
			return nil
		}
		return prefs.actions.OnApply(settings)
	})
}

func (prefs *Window) readForm() (Settings, error) {
	working, err := prefs.working.parse()
	if err != nil {
		return Settings{}, err
	}
	shortRest, err := prefs.shortRest.parse()
	if err != nil {
		return Settings{}, err
	}
	longRest, err := prefs.longRest.parse()
	if err != nil {
		return Settings{}, err
	}
	cycles, err := ParseCycleCount(prefs.cycles.Text)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Working:      working,
		ShortRest:    shortRest,
		LongRest:     longRest,
		CycleCount:   cycles,
		SoundEnabled: prefs.sound.Checked,
	}, nil
}

// ConfirmReload asks before reloading, the way the Reload button does.
func (prefs *Window) ConfirmReload() {
	prefs.Show()
	prefs.confirm("Reload configuration", "Discard unsaved changes and reload the saved configuration?", prefs.actions.OnReload)
}

// ConfirmReset asks before restoring factory values, the way the Reset button does.
func (prefs *Window) ConfirmReset() {
	prefs.Show()
	prefs.confirm("Reset configuration", "Restore the factory configuration?", prefs.actions.OnReset)
}

func (prefs *Window) confirm(title, message string, action func() error) {
	dialog.ShowConfirm(title, message, func(ok bool) {
		if ok {
			prefs.dirty = false
			prefs.run(action)
		}
	}, prefs.window)
}

// run executes a blocking action off the Fyne thread and reports failures in a dialog.
func (prefs *Window) run(action func() error) {
	if action == nil {
		return
	}
	go func() {
		if err := action(); err != nil {
			fyne.Do(func() {
				dialog.ShowError(err, prefs.window)
			})
		}
	}()
}
