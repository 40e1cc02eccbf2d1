package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/notifier"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/session"
)

type fakeController struct {
	calls []string
	sound []bool
	err   error
}

func (c *fakeController) StartTimer() error { c.calls = append(c.calls, "start"); return c.err }
func (c *fakeController) PauseTimer() error { c.calls = append(c.calls, "pause"); return c.err }
func (c *fakeController) StopTimer() error  { c.calls = append(c.calls, "stop"); return c.err }

func (c *fakeController) SetSoundEnabled(enabled bool) error {
	c.calls = append(c.calls, "sound")
	c.sound = append(c.sound, enabled)
	return c.err
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestKeysRunCommandsOutsideUpdate(t *testing.T) {
	tests := []struct {
		key   string
		state timekeeper.State
		want  string
	}{
		{"s", timekeeper.StateStopped, "start"},
		{"p", timekeeper.StateRunning, "pause"},
		{"x", timekeeper.StateRunning, "stop"},
		{" ", timekeeper.StateRunning, "pause"},
		{" ", timekeeper.StatePaused, "start"},
		{"m", timekeeper.StateStopped, "sound"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.state.String(), func(t *testing.T) {
			controller := &fakeController{}
			m := NewModel(controller, session.Status{State: tt.state})

			_, cmd := m.Update(keyMsg(tt.key))
			if len(controller.calls) != 0 {
				t.Fatalf("Update called the controller directly: %v", controller.calls)
			}
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if _, ok := cmd().(resultMsg); !ok {
				t.Fatal("command did not produce a result")
			}
			if len(controller.calls) != 1 || controller.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", controller.calls, tt.want)
			}
		})
	}
}

func TestSoundKeyToggles(t *testing.T) {
	controller := &fakeController{}
	m := NewModel(controller, session.Status{SoundEnabled: true})

	_, cmd := m.Update(keyMsg("m"))
	cmd()
	if len(controller.sound) != 1 || controller.sound[0] {
		t.Errorf("sound = %v, want [false]", controller.sound)
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		m := NewModel(&fakeController{}, session.Status{})
		updated, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not tea.Quit", msg)
		}
		if updated.View() != "" {
			t.Errorf("%s: view should be empty after quit", msg)
		}
	}
}

func TestCommandErrorIsShown(t *testing.T) {
	controller := &fakeController{err: errors.New("boom")}
	var model tea.Model = NewModel(controller, session.Status{})

	model, cmd := model.Update(keyMsg("s"))
	model, _ = model.Update(cmd())

	if !strings.Contains(model.View(), "start: boom") {
		t.Errorf("view does not show the error:\n%s", model.View())
	}

	controller.err = nil
	model, cmd = model.Update(keyMsg("s"))
	model, _ = model.Update(cmd())
	if strings.Contains(model.View(), "boom") {
		t.Error("error should clear after a successful command")
	}
}

func TestStatusIsRendered(t *testing.T) {
	var model tea.Model = NewModel(&fakeController{}, session.Status{})
	model, _ = model.Update(StatusMsg{Status: session.Status{
		State:        timekeeper.StatePaused,
		TimerText:    "00 : 04 : 12",
		CurrentCycle: 2,
		CycleCount:   4,
	}})

	view := model.View()
	for _, want := range []string{"Paused", "00 : 04 : 12", "Resting Time : 2 / 4", "[s] resume"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNotificationBannerExpires(t *testing.T) {
	var model tea.Model = NewModel(&fakeController{}, session.Status{})

	model, cmd := model.Update(NotificationMsg{Notification: notifier.Notification{
		Text:  "Time for a break",
		Style: notifier.DefaultStyle(),
	}})
	if cmd == nil {
		t.Fatal("expected an expiry command")
	}
	if !strings.Contains(model.View(), "Time for a break") {
		t.Fatal("banner not shown")
	}

	model, _ = model.Update(NotificationMsg{Notification: notifier.Notification{Text: "Back to work"}})
	model, _ = model.Update(expireMsg{id: 1})
	if !strings.Contains(model.View(), "Back to work") {
		t.Error("stale expiry removed the newer banner")
	}

	model, _ = model.Update(expireMsg{id: 2})
	if strings.Contains(model.View(), "Back to work") {
		t.Error("banner should expire")
	}
}

func TestProgressBarFollowsPhase(t *testing.T) {
	status := session.Status{
		State:        timekeeper.StateRunning,
		Working:      true,
		CurrentCycle: 1,
		CycleCount:   4,
		Remaining:    10 * time.Minute,
		Config:       model.TimerConfig{Working: 20 * time.Minute, ShortRest: 5 * time.Minute, LongRest: 15 * time.Minute, CycleCount: 4},
	}
	var m tea.Model = NewModel(&fakeController{}, session.Status{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	if got := m.(Model).bar.Width; got != 26 {
		t.Errorf("bar width = %d, want 26", got)
	}

	if !strings.Contains(m.View(), "0%") {
		t.Errorf("stopped view should show an empty bar:\n%s", m.View())
	}
	m, _ = m.Update(StatusMsg{Status: status})
	if !strings.Contains(m.View(), "50%") {
		t.Errorf("view should show half the phase elapsed:\n%s", m.View())
	}
}
