package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

// ErrNoSoundPlayer is returned when no bell command is available.
var ErrNoSoundPlayer = errors.New("no sound player available")

const playTimeout = 5 * time.Second

// SoundPlayer plays a short notification sound.
type SoundPlayer interface {
	Play(ctx context.Context) error
}

// NewBellPlayer returns a player for the notification bell. A non-empty command
// line replaces the platform default.
func NewBellPlayer(command string) (SoundPlayer, error) {
	if strings.TrimSpace(command) != "" {
		return newCommandPlayer(command)
	}
	return defaultBellPlayer()
}

type commandPlayer struct {
	name string
	args []string
}

func newCommandPlayer(command string) (*commandPlayer, error) {
	fields, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse sound command: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse sound command: %w", ErrNoSoundPlayer)
	}
	return &commandPlayer{name: fields[0], args: fields[1:]}, nil
}

func (player *commandPlayer) Play(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, playTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, player.name, player.args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("play sound with %s: %w: %s", player.name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// firstAvailable picks the first candidate whose executable is on PATH.
func firstAvailable(candidates [][]string) (SoundPlayer, error) {
	for _, candidate := range candidates {
		path, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		return &commandPlayer{name: path, args: candidate[1:]}, nil
	}
	return nil, ErrNoSoundPlayer
}
