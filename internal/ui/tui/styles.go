package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/timekeeper"
)

var (
	colorRunning = lipgloss.Color("#E5484D")
	colorPaused  = lipgloss.Color("#F5A524")
	colorStopped = lipgloss.Color("#8B8D98")
	colorAccent  = lipgloss.Color("#46A758")
	colorMuted   = lipgloss.Color("#6F6E77")
	colorError   = lipgloss.Color("#FF6369")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRunning)
	phaseStyle = lipgloss.NewStyle().Italic(true)
	timerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2)
	barStyle   = lipgloss.NewStyle().Padding(0, 2)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
)

func stateStyle(state timekeeper.State) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch state {
	case timekeeper.StateRunning:
		return style.Foreground(colorRunning)
	case timekeeper.StatePaused:
		return style.Foreground(colorPaused)
	default:
		return style.Foreground(colorStopped)
	}
}

func bannerStyle(large bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	if large {
		style = style.Bold(true).Padding(1, 3)
	}
	return style
}
