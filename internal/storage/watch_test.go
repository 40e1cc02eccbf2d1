package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := NewStore("pomodoro", path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	if err := store.Watch(ctx, func() { changes <- struct{}{} }); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := store.SaveSettings(DefaultSettings()); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	select {
	case <-changes:
		t.Fatal("own save reported as an external change")
	case <-time.After(4 * watchDebounce):
	}

	if err := os.WriteFile(path, []byte("working: 45m\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("external change not reported")
	}

	config, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Working != 45*time.Minute {
		t.Errorf("Working = %s, want 45m", config.Working)
	}
}
