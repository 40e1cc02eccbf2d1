// Package config resolves application options from flags, environment and an
// optional options file. Timer settings live in the storage package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
)

// AppName names the per-user config directory and the environment prefix.
const AppName = "pomodoro"

// EnvPrefix is prepended to environment variable names, e.g. POMODORO_LOG_LEVEL.
const EnvPrefix = "POMODORO"

// Options are the process-level settings of the application.
type Options struct {
	// SettingsPath overrides the YAML timer settings file location.
	SettingsPath string `mapstructure:"settings_path"`
	// LogLevel is one of error, warn, info, debug, trace.
	LogLevel string `mapstructure:"log_level"`
	// LogFile redirects log output when set.
	LogFile string `mapstructure:"log_file"`
	// TickInterval is the real-time period of one engine tick.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// SoundCommand replaces the platform bell player, e.g. "paplay /path/bell.oga".
	SoundCommand string `mapstructure:"sound_command"`
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		LogLevel:     "warn",
		TickInterval: time.Second,
	}
}

// flag name -> viper key
var flagKeys = map[string]string{
	"settings":      "settings_path",
	"log-level":     "log_level",
	"log-file":      "log_file",
	"tick-interval": "tick_interval",
	"sound-command": "sound_command",
}

// New returns a viper instance with defaults and environment lookup configured.
func New() *viper.Viper {
	v := viper.New()
	defaults := Default()
	v.SetDefault("settings_path", defaults.SettingsPath)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("tick_interval", defaults.TickInterval.String())
	v.SetDefault("sound_command", defaults.SoundCommand)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds the option flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	defaults := Default()
	fs.String("config", "", "options file (default is <user config dir>/pomodoro/options.yaml)")
	fs.String("settings", "", "timer settings file (default is <user config dir>/pomodoro/settings.yaml)")
	fs.String("log-level", defaults.LogLevel, "log level: error|warn|info|debug|trace")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.Duration("tick-interval", defaults.TickInterval, "real-time length of one timer tick")
	fs.String("sound-command", "", "command played as the notification bell")
}

// BindFlags makes flags take precedence over the environment and options file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ReadFile loads the options file. An explicit path must exist; the default one may not.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("options")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read options file: %w", err)
	}
	logging.Debugf("options loaded from %s", v.ConfigFileUsed())
	return nil
}

// Load decodes and validates the options held by v.
func Load(v *viper.Viper) (Options, error) {
	var options Options
	if err := v.Unmarshal(&options); err != nil {
		return Default(), fmt.Errorf("decode options: %w", err)
	}
	if err := options.Validate(); err != nil {
		return Default(), err
	}
	return options, nil
}

// Validate checks option values.
func (options Options) Validate() error {
	if options.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", options.TickInterval)
	}
	if _, _, err := logging.ParseLevel(options.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Dir returns the per-user configuration directory of the application.
func Dir() (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// ApplyLogging configures the logging package. A non-zero -v count wins over
// the configured level. The returned function closes the log file, if any.
func ApplyLogging(options Options, verbosity int) (func() error, error) {
	if verbosity > 0 {
		logging.SetVerbosity(verbosity)
	} else {
		level, count, err := logging.ParseLevel(options.LogLevel)
		if err != nil {
			return nil, err
		}
		logging.SetVerbosity(count)
		logging.SetLevel(level)
	}

	if options.LogFile == "" {
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(options.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(options.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(file)
	return file.Close, nil
}
