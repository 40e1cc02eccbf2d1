package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	options, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if options != Default() {
		t.Errorf("options = %+v, want %+v", options, Default())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POMODORO_TICK_INTERVAL", "250ms")
	t.Setenv("POMODORO_LOG_LEVEL", "debug")

	options, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if options.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s, want 250ms", options.TickInterval)
	}
	if options.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", options.LogLevel)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	content := "log_level: info\nsound_command: afplay bell.aiff\ntick_interval: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--tick-interval", "500ms"}); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	options, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if options.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %s, want flag value 500ms", options.TickInterval)
	}
	if options.LogLevel != "info" || options.SoundCommand != "afplay bell.aiff" {
		t.Errorf("file values not applied: %+v", options)
	}
}

func TestReadFileMissing(t *testing.T) {
	if err := ReadFile(New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("explicit missing options file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		wantErr bool
	}{
		{"defaults", Default(), false},
		{"zero tick", Options{LogLevel: "warn"}, true},
		{"bad level", Options{LogLevel: "chatty", TickInterval: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.options.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
