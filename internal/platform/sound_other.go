//go:build !linux && !darwin && !windows

package platform

func defaultBellPlayer() (SoundPlayer, error) {
	return nil, ErrNoSoundPlayer
}
