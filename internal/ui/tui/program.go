package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/session"
)

// Options configures Run.
type Options struct {
	// Bell plays the notification sound. When nil the terminal bell is rung.
	Bell platform.SoundPlayer
	// BellOutput receives the terminal bell. Defaults to stderr.
	BellOutput io.Writer
	// AltScreen renders on the alternate screen buffer.
	AltScreen bool
}

type presenter struct {
	ctx    context.Context
	send   func(tea.Msg)
	bell   platform.SoundPlayer
	output io.Writer
}

func (p *presenter) ShowStatus(status session.Status) {
	p.send(StatusMsg{Status: status})
}

func (p *presenter) ShowNotification(notification notifier.Notification) {
	logging.Infof("notification: %s", notification.Text)
	p.send(NotificationMsg{Notification: notification})
}

func (p *presenter) PlaySound(cue string) {
	if p.bell == nil {
		_, _ = io.WriteString(p.output, "\a")
		return
	}
	go func() {
		if err := p.bell.Play(p.ctx); err != nil {
			logging.Warnf("play %s: %v", cue, err)
		}
	}()
}

// Run starts a session backed by store and renders it until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, store session.Store, options Options, sessionOptions ...session.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	output := options.BellOutput
	if output == nil {
		output = os.Stderr
	}
	p := &presenter{ctx: ctx, bell: options.Bell, output: output}

	sess, err := session.New(store, p, sessionOptions...)
	if err != nil {
		return err
	}

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if options.AltScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	program := tea.NewProgram(NewModel(sess, sess.Last()), programOptions...)
	p.send = program.Send

	sessionErr := make(chan error, 1)
	go func() {
		sessionErr <- sess.Run(ctx)
	}()

	_, runErr := program.Run()
	cancel()
	if err := <-sessionErr; err != nil && !errors.Is(err, context.Canceled) {
		logging.Warnf("session: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
