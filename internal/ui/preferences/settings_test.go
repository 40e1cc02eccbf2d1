package preferences

import (
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		h, m, s string
		want    Clock
		wantErr bool
	}{
		{"plain", "0", "25", "0", Clock{0, 25, 0}, false},
		{"empty fields", "", " 5 ", "", Clock{0, 5, 0}, false},
		{"clamped high", "30", "75", "60", Clock{23, 59, 59}, false},
		{"clamped low", "-1", "-5", "0", Clock{0, 0, 0}, false},
		{"not a number", "1", "x", "0", Clock{}, true},
		{"too long", "12345", "0", "0", Clock{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.h, tt.m, tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCycleCount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"0", 1, false},
		{"-3", 1, false},
		{"", 1, false},
		{"four", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCycleCount(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseCycleCount(%q) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCycleCount(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	config := model.TimerConfig{
		Working:    time.Hour + 2*time.Minute + 3*time.Second,
		ShortRest:  5 * time.Minute,
		LongRest:   20 * time.Minute,
		CycleCount: 4,
	}

	settings := FromConfig(config, false)
	if settings.Working != (Clock{1, 2, 3}) {
		t.Errorf("Working = %+v", settings.Working)
	}
	if settings.SoundEnabled {
		t.Error("SoundEnabled should be false")
	}
	if got := settings.TimerConfig(); got != config {
		t.Errorf("TimerConfig = %+v, want %+v", got, config)
	}
}

func TestClockOfClampsLongDurations(t *testing.T) {
	if got := ClockOf(100 * time.Hour); got != (Clock{23, 0, 0}) {
		t.Errorf("ClockOf(100h) = %+v, want 23:00:00", got)
	}
}
