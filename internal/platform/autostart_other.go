//go:build !linux && !darwin && !windows

package platform

import (
	"fmt"
	"path/filepath"
)

func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	return fmt.Errorf("enable autostart: %w", ErrUnsupported)
}

func (service *platformService) DisableAutostart(appName string) error {
	return fmt.Errorf("disable autostart: %w", ErrUnsupported)
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	return false, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
