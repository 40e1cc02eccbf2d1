//go:build windows

package platform

func defaultBellPlayer() (SoundPlayer, error) {
	return firstAvailable([][]string{
		{"powershell", "-NoProfile", "-NonInteractive", "-Command", "[System.Media.SystemSounds]::Asterisk.Play()"},
	})
}
