//go:build darwin

package platform

func defaultBellPlayer() (SoundPlayer, error) {
	return firstAvailable([][]string{
		{"afplay", "/System/Library/Sounds/Glass.aiff"},
	})
}
