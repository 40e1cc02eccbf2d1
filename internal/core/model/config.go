package model

import (
	"fmt"
	"time"
)

// TimerConfig contains the durations and cycle length driving the pomodoro engine.
type TimerConfig struct {
	Working    time.Duration
	ShortRest  time.Duration
	LongRest   time.Duration
	CycleCount int
}

// NotifierConfig contains settings for phase notifications.
type NotifierConfig struct {
	SoundEnabled bool
}

// DefaultTimerConfig returns the configuration used when nothing has been saved yet.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Working:    20 * time.Minute,
		ShortRest:  5 * time.Minute,
		LongRest:   15 * time.Minute,
		CycleCount: 4,
	}
}

// FactoryTimerConfig returns the values applied by a configuration reset.
// They intentionally differ from DefaultTimerConfig.
func FactoryTimerConfig() TimerConfig {
	return TimerConfig{
		Working:    25 * time.Minute,
		ShortRest:  5 * time.Minute,
		LongRest:   20 * time.Minute,
		CycleCount: 4,
	}
}

// DefaultNotifierConfig returns the notifier defaults.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{SoundEnabled: true}
}

// ConfigError describes an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}

// Validate checks the TimerConfig invariants.
func (config TimerConfig) Validate() error {
	if err := ValidateDuration("working duration", config.Working); err != nil {
		return err
	}
	if err := ValidateDuration("short rest duration", config.ShortRest); err != nil {
		return err
	}
	if err := ValidateDuration("long rest duration", config.LongRest); err != nil {
		return err
	}
	return ValidateCycleCount(config.CycleCount)
}

// ValidateDuration rejects negative durations.
func ValidateDuration(field string, value time.Duration) error {
	if value < 0 {
		return &ConfigError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// ValidateCycleCount rejects cycle counts below one.
func ValidateCycleCount(count int) error {
	if count < 1 {
		return &ConfigError{Field: "cycle count", Reason: "must be at least 1"}
	}
	return nil
}

// ClockDuration builds a duration from an hour/minute/second triple.
func ClockDuration(hours, minutes, seconds int) time.Duration {
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}

// SplitClock breaks a duration into total hours, minutes and seconds.
// Negative values are treated as zero.
func SplitClock(value time.Duration) (hours, minutes, seconds int) {
	if value < 0 {
		value = 0
	}
	total := int(value / time.Second)
	return total / 3600, (total / 60) % 60, total % 60
}
