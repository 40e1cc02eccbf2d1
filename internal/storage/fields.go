package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// Field is one named, user-editable settings value.
type Field struct {
	Key   string
	Value string
}

// FieldKeys lists the keys accepted by SetField, in display order.
var FieldKeys = []string{"working", "short_rest", "long_rest", "cycle_count", "sound_enabled"}

// Fields renders settings as key/value pairs.
func Fields(settings Settings) []Field {
	return []Field{
		{"working", settings.Timer.Working.String()},
		{"short_rest", settings.Timer.ShortRest.String()},
		{"long_rest", settings.Timer.LongRest.String()},
		{"cycle_count", strconv.Itoa(settings.Timer.CycleCount)},
		{"sound_enabled", strconv.FormatBool(settings.Notifier.SoundEnabled)},
	}
}

// SetField parses value and stores it under key.
func SetField(settings *Settings, key, value string) error {
	key = NormalizeKey(key)
	value = strings.TrimSpace(value)

	switch key {
	case "working", "short_rest", "long_rest":
		duration, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		if err := model.ValidateDuration(key, duration); err != nil {
			return err
		}
		switch key {
		case "working":
			settings.Timer.Working = duration
		case "short_rest":
			settings.Timer.ShortRest = duration
		default:
			settings.Timer.LongRest = duration
		}
	case "cycle_count":
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		if err := model.ValidateCycleCount(count); err != nil {
			return err
		}
		settings.Timer.CycleCount = count
	case "sound_enabled":
		enabled, err := parseSwitch(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		settings.Notifier.SoundEnabled = enabled
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(FieldKeys, ", "))
	}
	return nil
}

// NormalizeKey lowercases key and accepts dashes for underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(value)
}
