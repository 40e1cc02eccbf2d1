package cli

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/toast"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

const appID = "io.pomodoro.app"

func newTrayCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run the timer in the system tray (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(cmd.Context(), state)
		},
	}
}

func runTray(ctx context.Context, state *rootState) error {
	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logging.Infof("already running, asking the running instance to show its window")
			return platform.SignalRunningInstance(config.AppName, platform.CommandShow)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := state.openStore()
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconStopped))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform, try the tui command")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Assigned before fyneApp.Run, so every callback below sees it.
	var sess *session.Session

	prefs := preferences.New(fyneApp, preferences.Actions{
		OnApply: func(settings preferences.Settings) error {
			if err := sess.ApplyConfig(settings.TimerConfig()); err != nil {
				return err
			}
			return sess.SetSoundEnabled(settings.SoundEnabled)
		},
		OnSound:  func(enabled bool) error { return sess.SetSoundEnabled(enabled) },
		OnReload: func() error { return sess.ReloadConfig() },
		OnReset:  func() error { return sess.ResetConfig() },
		OnSave:   func() error { return sess.SaveConfig() },
	})

	manager := tray.New(desktopApp, tray.Callbacks{
		OnStart:       func() { background("start", func() error { return sess.StartTimer() }) },
		OnPause:       func() { background("pause", func() error { return sess.PauseTimer() }) },
		OnStop:        func() { background("stop", func() error { return sess.StopTimer() }) },
		OnPreferences: prefs.Show,
		OnSound: func(enabled bool) {
			background("sound", func() error { return sess.SetSoundEnabled(enabled) })
		},
		OnReload: prefs.ConfirmReload,
		OnReset:  prefs.ConfirmReset,
		OnSave:   func() { background("save", func() error { return sess.SaveConfig() }) },
		OnQuit: func() {
			cancel()
			fyneApp.Quit()
		},
	})

	toastWindow := toast.New(fyneApp, resources.MustIcon(resources.IconSuccess))
	presenter := tray.NewPresenter(ctx, manager, prefs, toastWindow, state.bell())

	sess, err = session.New(store, presenter, state.sessionOptions()...)
	if err != nil {
		return err
	}

	go func() {
		if err := sess.Run(ctx); err != nil {
			logging.Errorf("session: %v", err)
		}
	}()
	if err := store.Watch(ctx, func() { reloadFromDisk(sess) }); err != nil {
		logging.Warnf("settings changes on disk will not be picked up: %v", err)
	}
	go guard.Serve(func(command string) {
		logging.Debugf("instance command %q", command)
		if command == platform.CommandShow {
			fyne.Do(prefs.Show)
		}
	})
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()
	cancel()
	<-sess.Done()
	return nil
}

func reloadFromDisk(sess *session.Session) {
	err := sess.ReloadConfig()
	switch {
	case err == nil:
	case errors.Is(err, timekeeper.ErrConfigLocked):
		logging.Infof("settings changed on disk; use Reload after stopping the timer")
	default:
		logging.Warnf("reload settings: %v", err)
	}
}

// background runs a session command off the Fyne thread.
func background(action string, command func() error) {
	go func() {
		if err := command(); err != nil {
			logging.Warnf("%s: %v", action, err)
		}
	}()
}
