//go:build linux

package platform

const freedesktopBell = "/usr/share/sounds/freedesktop/stereo/bell.oga"

func defaultBellPlayer() (SoundPlayer, error) {
	return firstAvailable([][]string{
		{"canberra-gtk-play", "--id", "bell"},
		{"paplay", freedesktopBell},
		{"pw-play", freedesktopBell},
	})
}
