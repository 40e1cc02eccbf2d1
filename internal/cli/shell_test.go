package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/shlex"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logging"
	"pomodoro/internal/session"
	"pomodoro/internal/storage"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore("pomodoro", filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sess, err := session.New(store, nil)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}

	t.Cleanup(serve(context.Background(), sess))

	out := &bytes.Buffer{}
	return &shell{session: sess, out: out}, out, store
}

func runLine(t *testing.T, sh *shell, line string) error {
	t.Helper()
	tokens, err := shlex.Split(line)
	if err != nil {
		t.Fatalf("split %q: %v", line, err)
	}
	return sh.execute(tokens)
}

func mustRun(t *testing.T, sh *shell, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := runLine(t, sh, line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}

func statusOutput(t *testing.T, sh *shell, out *bytes.Buffer) string {
	t.Helper()
	out.Reset()
	mustRun(t, sh, "status")
	return out.String()
}

func TestShellEditsConfiguration(t *testing.T) {
	sh, out, _ := newTestShell(t)

	mustRun(t, sh, "set work 0 30 0", "set short 0 2 30", "set long 1 0 0", "cycles 2", "sound off")

	got := statusOutput(t, sh, out)
	for _, want := range []string{"Stopped", "work 30m0s", "short 2m30s", "long 1h0m0s", "cycles 2", "sound off"} {
		if !strings.Contains(got, want) {
			t.Errorf("status missing %q:\n%s", want, got)
		}
	}
}

func TestShellLocksConfigurationWhileRunning(t *testing.T) {
	sh, out, _ := newTestShell(t)

	mustRun(t, sh, "start")
	if got := statusOutput(t, sh, out); !strings.Contains(got, "Running") {
		t.Fatalf("status after start:\n%s", got)
	}

	for _, line := range []string{"set work 0 1 0", "cycles 3", "reload", "reset"} {
		if err := runLine(t, sh, line); !errors.Is(err, timekeeper.ErrConfigLocked) {
			t.Errorf("%q while running: err = %v, want ErrConfigLocked", line, err)
		}
	}
	if err := runLine(t, sh, "sound on"); err != nil {
		t.Errorf("sound should be allowed while running: %v", err)
	}

	mustRun(t, sh, "pause")
	if got := statusOutput(t, sh, out); !strings.Contains(got, "Paused") {
		t.Errorf("status after pause:\n%s", got)
	}
	mustRun(t, sh, "stop", "cycles 3")
}

func TestShellSaveReloadReset(t *testing.T) {
	sh, out, store := newTestShell(t)

	mustRun(t, sh, "set work 0 40 0", "save")
	saved, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Working.Minutes() != 40 {
		t.Errorf("saved working = %s, want 40m", saved.Working)
	}

	mustRun(t, sh, "reset")
	if got := statusOutput(t, sh, out); !strings.Contains(got, "work 25m0s") || !strings.Contains(got, "long 20m0s") {
		t.Errorf("status after reset:\n%s", got)
	}

	mustRun(t, sh, "reload")
	if got := statusOutput(t, sh, out); !strings.Contains(got, "work 40m0s") {
		t.Errorf("status after reload:\n%s", got)
	}
}

func TestShellRejectsBadInput(t *testing.T) {
	sh, _, _ := newTestShell(t)

	tests := []string{
		"set work 1 2",
		"set lunch 0 1 0",
		"set work a b c",
		"set work -1 0 0",
		"cycles",
		"cycles many",
		"cycles 0",
		"sound loud",
		"dance",
		"log --nope",
		"log --level loud",
	}
	for _, line := range tests {
		if err := runLine(t, sh, line); err == nil {
			t.Errorf("%q: expected an error", line)
		}
	}
}

func TestShellExitAndHelp(t *testing.T) {
	sh, out, _ := newTestShell(t)

	if err := runLine(t, sh, "exit"); !errors.Is(err, errExit) {
		t.Errorf("exit: err = %v", err)
	}
	if err := runLine(t, sh, "QUIT"); !errors.Is(err, errExit) {
		t.Errorf("QUIT: err = %v", err)
	}
	if err := runLine(t, sh, ""); err != nil {
		t.Errorf("empty line: %v", err)
	}

	mustRun(t, sh, "help")
	if !strings.Contains(out.String(), "set work|short|long H M S") {
		t.Errorf("help output:\n%s", out.String())
	}
}

func TestShellLogLevel(t *testing.T) {
	previous := logging.Verbosity()
	t.Cleanup(func() { logging.SetVerbosity(previous) })

	sh, out, _ := newTestShell(t)

	mustRun(t, sh, "log --level debug")
	if logging.LevelName() != "debug" {
		t.Errorf("level = %s, want debug", logging.LevelName())
	}

	mustRun(t, sh, "log -v")
	if logging.LevelName() != "info" {
		t.Errorf("level = %s, want info", logging.LevelName())
	}

	out.Reset()
	mustRun(t, sh, "log --show")
	if !strings.Contains(out.String(), "log level: info") {
		t.Errorf("log --show output: %q", out.String())
	}
}

func TestServeStopWaitsForSession(t *testing.T) {
	store, err := storage.NewStore("pomodoro", filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sess, err := session.New(store, nil)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}

	stop := serve(context.Background(), sess)
	if err := sess.StartTimer(); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	stop()

	select {
	case <-sess.Done():
	default:
		t.Fatal("stop returned before the session loop ended")
	}
	if err := sess.StopTimer(); !errors.Is(err, session.ErrClosed) {
		t.Errorf("StopTimer after stop: err = %v, want ErrClosed", err)
	}
}

func TestShellPresenterReportsTransitions(t *testing.T) {
	out := &bytes.Buffer{}
	presenter := newShellPresenter(context.Background(), out, nil)

	presenter.ShowStatus(session.Status{State: timekeeper.StateStopped})
	if out.Len() != 0 {
		t.Errorf("unchanged state printed %q", out.String())
	}

	presenter.ShowStatus(session.Status{State: timekeeper.StateRunning, Working: true, CurrentCycle: 1, CycleCount: 4})
	presenter.ShowStatus(session.Status{State: timekeeper.StateRunning, Working: true, CurrentCycle: 1, CycleCount: 4})
	presenter.ShowNotification(notifier.Notification{Text: "Break time"})
	presenter.PlaySound(notifier.BellCue)

	want := "[Running] Working Time : 1 / 4\n>> Break time\n\a"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
