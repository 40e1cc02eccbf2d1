package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"pomodoro/internal/logging"
)

const watchDebounce = 200 * time.Millisecond

// Watch calls onChange after another process rewrites the settings file, for
// example `pomodoro config set` while the tray is running. Saves made through
// this Store are ignored. Watching stops when ctx is cancelled.
func (store *Store) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	// The file is replaced by rename on save, so watch its directory.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go store.watchLoop(ctx, watcher, onChange)
	return nil
}

func (store *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func()) {
	defer watcher.Close()

	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != store.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logging.Tracef("settings event %s", event)
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			if store.changedExternally() {
				logging.Infof("settings file changed on disk")
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("watch settings: %v", err)
		}
	}
}

func (store *Store) changedExternally() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	current, err := os.ReadFile(store.path)
	if err != nil {
		return false
	}
	if store.written != nil && bytes.Equal(current, store.written) {
		return false
	}
	store.written = current
	return true
}
