package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/term"

	"pomodoro/internal/logging"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	previous := logging.Verbosity()
	t.Cleanup(func() { logging.SetVerbosity(previous) })

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return filepath.Join(dir, "timer", "settings.yaml")
}

func TestConfigSetAndGet(t *testing.T) {
	settings := isolateConfig(t)

	got, err := executeRoot(t, "--settings", settings, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if !strings.Contains(got, "working: 20m0s") || !strings.Contains(got, "sound_enabled: true") {
		t.Errorf("defaults:\n%s", got)
	}

	if _, err := executeRoot(t, "--settings", settings, "config", "set", "working", "25m", "cycle-count", "6", "sound_enabled", "off"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(settings); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	got, err = executeRoot(t, "--settings", settings, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	for _, want := range []string{"working: 25m0s", "short_rest: 5m0s", "cycle_count: 6", "sound_enabled: false"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	got, err = executeRoot(t, "--settings", settings, "config", "get", "Cycle-Count")
	if err != nil {
		t.Fatalf("config get key: %v", err)
	}
	if got != "6\n" {
		t.Errorf("config get cycle_count = %q, want %q", got, "6\n")
	}
}

func TestConfigSetRejectsBadInput(t *testing.T) {
	settings := isolateConfig(t)

	tests := [][]string{
		{"config", "set", "working"},
		{"config", "set", "lunch", "1h"},
		{"config", "set", "working", "soon"},
		{"config", "set", "cycle_count", "0"},
		{"config", "get", "lunch"},
	}
	for _, args := range tests {
		if _, err := executeRoot(t, append([]string{"--settings", settings}, args...)...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
	if _, err := os.Stat(settings); !os.IsNotExist(err) {
		t.Errorf("rejected input should not write the settings file (stat err = %v)", err)
	}
}

func TestConfigResetAndPath(t *testing.T) {
	settings := isolateConfig(t)

	if _, err := executeRoot(t, "--settings", settings, "config", "set", "working", "1h", "sound_enabled", "no"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := executeRoot(t, "--settings", settings, "config", "reset"); err != nil {
		t.Fatalf("config reset: %v", err)
	}

	got, err := executeRoot(t, "--settings", settings, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	for _, want := range []string{"working: 25m0s", "long_rest: 20m0s", "sound_enabled: false"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q after reset:\n%s", want, got)
		}
	}

	got, err = executeRoot(t, "--settings", settings, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(got) != settings {
		t.Errorf("config path = %q, want %q", got, settings)
	}
}

func TestRootRejectsBadOptions(t *testing.T) {
	isolateConfig(t)

	if _, err := executeRoot(t, "--log-level", "loud", "config", "path"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
	if _, err := executeRoot(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "path"); err == nil {
		t.Error("expected an error for a missing options file")
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("running attached to a terminal")
	}
	isolateConfig(t)

	if _, err := executeRoot(t, "tui"); !errors.Is(err, errTerminalRequired) {
		t.Errorf("err = %v, want errTerminalRequired", err)
	}
}
