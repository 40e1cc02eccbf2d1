package tray

import (
	"context"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/toast"
)

// Presenter forwards session output to the Fyne widgets. It is called from the
// session goroutine and hops onto the Fyne thread with fyne.Do.
type Presenter struct {
	ctx         context.Context
	manager     *Manager
	preferences *preferences.Window
	toast       *toast.Window
	bell        platform.SoundPlayer
}

// NewPresenter wires the tray widgets. bell may be nil when no sound player is available.
func NewPresenter(ctx context.Context, manager *Manager, prefs *preferences.Window, toastWindow *toast.Window, bell platform.SoundPlayer) *Presenter {
	return &Presenter{
		ctx:         ctx,
		manager:     manager,
		preferences: prefs,
		toast:       toastWindow,
		bell:        bell,
	}
}

// ShowStatus implements session.Presenter.
func (presenter *Presenter) ShowStatus(status session.Status) {
	fyne.Do(func() {
		if presenter.manager != nil {
			presenter.manager.Update(status)
		}
		if presenter.preferences != nil {
			presenter.preferences.Update(status)
		}
	})
}

// ShowNotification implements notifier.Presenter.
func (presenter *Presenter) ShowNotification(notification notifier.Notification) {
	logging.Infof("notification: %s", notification.Text)
	if presenter.toast == nil {
		return
	}
	fyne.Do(func() {
		presenter.toast.Show(notification)
	})
}

// PlaySound implements notifier.Presenter. Playback runs in the background.
func (presenter *Presenter) PlaySound(cue string) {
	if presenter.bell == nil {
		logging.Debugf("no sound player for cue %q", cue)
		return
	}
	go func() {
		if err := presenter.bell.Play(presenter.ctx); err != nil {
			logging.Warnf("play %s: %v", cue, err)
		}
	}()
}
