package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// Field ranges of the editors.
const (
	MaxHours    = 23
	MaxMinutes  = 59
	MaxSeconds  = 59
	MinCycles   = 1
	maxFieldLen = 4
)

// Clock is an hour/minute/second triple as edited in the form.
type Clock struct {
	Hours   int
	Minutes int
	Seconds int
}

// ClockOf splits a duration for display.
func ClockOf(value time.Duration) Clock {
	hours, minutes, seconds := model.SplitClock(value)
	return Clock{Hours: hours, Minutes: minutes, Seconds: seconds}.Clamp()
}

// Clamp forces every part into its editor range.
func (clock Clock) Clamp() Clock {
	return Clock{
		Hours:   clamp(clock.Hours, 0, MaxHours),
		Minutes: clamp(clock.Minutes, 0, MaxMinutes),
		Seconds: clamp(clock.Seconds, 0, MaxSeconds),
	}
}

// Duration converts the clock back into a duration.
func (clock Clock) Duration() time.Duration {
	return model.ClockDuration(clock.Hours, clock.Minutes, clock.Seconds)
}

// Settings is the content of the preferences form.
type Settings struct {
	Working      Clock
	ShortRest    Clock
	LongRest     Clock
	CycleCount   int
	SoundEnabled bool
}

// FromConfig fills the form from the engine and notifier configuration.
func FromConfig(config model.TimerConfig, sound bool) Settings {
	return Settings{
		Working:      ClockOf(config.Working),
		ShortRest:    ClockOf(config.ShortRest),
		LongRest:     ClockOf(config.LongRest),
		CycleCount:   clamp(config.CycleCount, MinCycles, config.CycleCount),
		SoundEnabled: sound,
	}
}

// TimerConfig converts the form into an engine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Working:    settings.Working.Duration(),
		ShortRest:  settings.ShortRest.Duration(),
		LongRest:   settings.LongRest.Duration(),
		CycleCount: settings.CycleCount,
	}
}

// ParseClock reads three editor fields. Empty fields count as zero and values
// outside the editor ranges are clamped.
func ParseClock(hours, minutes, seconds string) (Clock, error) {
	var clock Clock
	fields := []struct {
		name   string
		raw    string
		target *int
	}{
		{"hours", hours, &clock.Hours},
		{"minutes", minutes, &clock.Minutes},
		{"seconds", seconds, &clock.Seconds},
	}
	for _, field := range fields {
		value, err := parseField(field.raw)
		if err != nil {
			return Clock{}, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.target = value
	}
	return clock.Clamp(), nil
}

// ParseCycleCount reads the cycle editor, clamping to at least one cycle.
func ParseCycleCount(raw string) (int, error) {
	value, err := parseField(raw)
	if err != nil {
		return 0, fmt.Errorf("cycles: %w", err)
	}
	return clamp(value, MinCycles, value), nil
}

func parseField(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if len(raw) > maxFieldLen {
		return 0, fmt.Errorf("%q is too long", raw)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return value, nil
}

func clamp(value, low, high int) int {
	if high < low {
		high = low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
