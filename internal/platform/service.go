package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnsupported is returned when the current OS has no implementation.
var ErrUnsupported = errors.New("not supported on this platform")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string, args ...string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// slug lowercases and hyphenates an application name for use in file names and labels.
func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "pomodoro"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func checkAutostartArgs(op, appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("%s: app name is empty", op)
	}
	if op == "enable autostart" && execPath == "" {
		return fmt.Errorf("%s: exec path is empty", op)
	}
	return nil
}
