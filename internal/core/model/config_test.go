package model

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultAndFactoryConfigsDiffer(t *testing.T) {
	defaults := DefaultTimerConfig()
	if defaults.Working != 20*time.Minute || defaults.ShortRest != 5*time.Minute ||
		defaults.LongRest != 15*time.Minute || defaults.CycleCount != 4 {
		t.Fatalf("unexpected defaults: %+v", defaults)
	}

	factory := FactoryTimerConfig()
	if factory.Working != 25*time.Minute || factory.ShortRest != 5*time.Minute ||
		factory.LongRest != 20*time.Minute || factory.CycleCount != 4 {
		t.Fatalf("unexpected factory values: %+v", factory)
	}

	if defaults == factory {
		t.Fatal("default and factory configs are expected to differ")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config TimerConfig
		field  string
	}{
		{name: "valid", config: DefaultTimerConfig()},
		{name: "zero durations", config: TimerConfig{CycleCount: 1}},
		{name: "negative working", config: TimerConfig{Working: -time.Second, CycleCount: 1}, field: "working duration"},
		{name: "negative short", config: TimerConfig{ShortRest: -time.Second, CycleCount: 1}, field: "short rest duration"},
		{name: "negative long", config: TimerConfig{LongRest: -time.Second, CycleCount: 1}, field: "long rest duration"},
		{name: "zero cycles", config: TimerConfig{Working: time.Minute}, field: "cycle count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if configErr.Field != tt.field {
				t.Errorf("field = %q, want %q", configErr.Field, tt.field)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	value := ClockDuration(1, 2, 3)
	if value != time.Hour+2*time.Minute+3*time.Second {
		t.Fatalf("ClockDuration = %v", value)
	}
	hours, minutes, seconds := SplitClock(value)
	if hours != 1 || minutes != 2 || seconds != 3 {
		t.Fatalf("SplitClock = %d:%d:%d", hours, minutes, seconds)
	}

	hours, minutes, seconds = SplitClock(-time.Minute)
	if hours != 0 || minutes != 0 || seconds != 0 {
		t.Fatalf("SplitClock(negative) = %d:%d:%d", hours, minutes, seconds)
	}
}
