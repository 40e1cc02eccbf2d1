package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
)

const settingsFileName = "settings.yaml"

// Settings is everything the settings file persists.
type Settings struct {
	Timer    model.TimerConfig
	Notifier model.NotifierConfig
}

// DefaultSettings returns the values used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Timer:    model.DefaultTimerConfig(),
		Notifier: model.DefaultNotifierConfig(),
	}
}

type yamlSettings struct {
	Working      string `yaml:"working,omitempty"`
	ShortRest    string `yaml:"short_rest,omitempty"`
	LongRest     string `yaml:"long_rest,omitempty"`
	CycleCount   int    `yaml:"cycle_count,omitempty"`
	SoundEnabled *bool  `yaml:"sound_enabled,omitempty"`
}

// Store reads and writes the YAML settings file at a fixed path.
type Store struct {
	path string
	mu   sync.Mutex

	// last content written by this process, used to ignore our own saves when watching
	written []byte
}

// NewStore creates a Store. An empty path resolves to the per-user config directory.
func NewStore(appName, path string) (*Store, error) {
	if path == "" {
		resolved, err := resolveConfigPath(appName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Store{path: path}, nil
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) LoadSettings() (Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.load()
}

// SaveSettings writes user preferences to YAML.
func (store *Store) SaveSettings(settings Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.save(settings)
}

// Load returns the persisted timer configuration.
func (store *Store) Load() (model.TimerConfig, error) {
	settings, err := store.LoadSettings()
	return settings.Timer, err
}

// Save persists the timer configuration, keeping the stored sound preference.
func (store *Store) Save(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	return store.update(func(settings *Settings) {
		settings.Timer = config
	})
}

// LoadSoundPreference returns the persisted sound flag.
func (store *Store) LoadSoundPreference() (bool, error) {
	settings, err := store.LoadSettings()
	return settings.Notifier.SoundEnabled, err
}

// SaveSoundPreference persists the sound flag, keeping the stored timer configuration.
func (store *Store) SaveSoundPreference(enabled bool) error {
	return store.update(func(settings *Settings) {
		settings.Notifier.SoundEnabled = enabled
	})
}

func (store *Store) update(mutate func(*Settings)) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings, err := store.load()
	if err != nil {
		return err
	}
	mutate(&settings)
	return store.save(settings)
}

func (store *Store) load() (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&settings, fileData); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

func (store *Store) save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sound := settings.Notifier.SoundEnabled
	fileData := yamlSettings{
		Working:      settings.Timer.Working.String(),
		ShortRest:    settings.Timer.ShortRest.String(),
		LongRest:     settings.Timer.LongRest.String(),
		CycleCount:   settings.Timer.CycleCount,
		SoundEnabled: &sound,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	store.written = serialized

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) error {
	durations := []struct {
		field  string
		raw    string
		target *time.Duration
	}{
		{"working", fileData.Working, &settings.Timer.Working},
		{"short_rest", fileData.ShortRest, &settings.Timer.ShortRest},
		{"long_rest", fileData.LongRest, &settings.Timer.LongRest},
	}
	for _, entry := range durations {
		if entry.raw == "" {
			continue
		}
		value, err := time.ParseDuration(entry.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", entry.field, err)
		}
		if value >= 0 {
			*entry.target = value
		}
	}

	if fileData.CycleCount > 0 {
		settings.Timer.CycleCount = fileData.CycleCount
	}
	if fileData.SoundEnabled != nil {
		settings.Notifier.SoundEnabled = *fileData.SoundEnabled
	}
	return nil
}
