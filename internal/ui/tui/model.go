// Package tui renders a running session in the terminal with Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/notifier"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/session"
)

// Controller is the part of a session the terminal UI drives.
type Controller interface {
	StartTimer() error
	PauseTimer() error
	StopTimer() error
	SetSoundEnabled(enabled bool) error
}

// StatusMsg carries a session status into the program.
type StatusMsg struct {
	Status session.Status
}

// NotificationMsg carries a phase notification into the program.
type NotificationMsg struct {
	Notification notifier.Notification
}

type expireMsg struct {
	id int
}

type resultMsg struct {
	action string
	err    error
}

// Model is the Bubble Tea model. Session commands run inside tea.Cmd
// goroutines, never in Update, because the session publishes back through
// Program.Send.
type Model struct {
	controller Controller
	status     session.Status
	bar        progress.Model

	banner   string
	large    bool
	bannerID int

	lastErr  error
	quitting bool
	width    int
}

// NewModel creates a model showing initial until the first StatusMsg arrives.
func NewModel(controller Controller, initial session.Status) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth))
	return Model{controller: controller, status: initial, bar: bar}
}

const maxBarWidth = 40

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(min(msg.Width-4, maxBarWidth), 10)
		return m, nil
	case StatusMsg:
		m.status = msg.Status
		return m, nil
	case NotificationMsg:
		m.bannerID++
		m.banner = msg.Notification.Text
		m.large = msg.Notification.Style.LargeFont
		return m, expireAfter(bannerLifetime(msg.Notification.Style), m.bannerID)
	case expireMsg:
		if msg.id == m.bannerID {
			m.banner = ""
		}
		return m, nil
	case resultMsg:
		m.lastErr = nil
		if msg.err != nil {
			m.lastErr = fmt.Errorf("%s: %w", msg.action, msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "s":
		return m, m.run("start", m.controller.StartTimer)
	case "p":
		return m, m.run("pause", m.controller.PauseTimer)
	case "x":
		return m, m.run("stop", m.controller.StopTimer)
	case " ", "space":
		if m.status.State == timekeeper.StateRunning {
			return m, m.run("pause", m.controller.PauseTimer)
		}
		return m, m.run("start", m.controller.StartTimer)
	case "m":
		enabled := !m.status.SoundEnabled
		return m, m.run("sound", func() error {
			return m.controller.SetSoundEnabled(enabled)
		})
	}
	return m, nil
}

func (m Model) run(action string, command func() error) tea.Cmd {
	if m.controller == nil {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{action: action, err: command()}
	}
}

func expireAfter(lifetime time.Duration, id int) tea.Cmd {
	return tea.Tick(lifetime, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

func bannerLifetime(style notifier.Style) time.Duration {
	lifetime := style.FadeIn + style.Expire + style.FadeOut
	if lifetime <= 0 {
		return notifier.DefaultStyle().Expire
	}
	return lifetime
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pomodoro"))
	b.WriteString("\n\n")
	b.WriteString(stateStyle(m.status.State).Render(m.status.State.String()))
	b.WriteString("  ")
	b.WriteString(phaseStyle.Render(m.status.PhaseLabel()))
	b.WriteString("\n\n")
	b.WriteString(timerStyle.Render(timerText(m.status)))
	b.WriteString("\n")
	b.WriteString(barStyle.Render(m.bar.ViewAs(m.status.Progress())))
	b.WriteString("\n")

	sound := "off"
	if m.status.SoundEnabled {
		sound = "on"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("sound %s", sound)))
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString("\n")
		b.WriteString(bannerStyle(m.large).Render(m.banner))
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.status.State)))
	b.WriteString("\n")
	return b.String()
}

func timerText(status session.Status) string {
	if status.TimerText == "" {
		return timekeeper.FormatRemaining(status.Remaining)
	}
	return status.TimerText
}

func helpLine(state timekeeper.State) string {
	start := "[s] start"
	if state == timekeeper.StatePaused {
		start = "[s] resume"
	}
	return start + "  [p] pause  [x] stop  [space] toggle  [m] sound  [q] quit"
}
