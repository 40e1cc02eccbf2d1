package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Bell plays a synthesized bell through the default audio device.
type Bell struct {
	frequency float64
	length    time.Duration
	volume    float64
}

// NewBell opens the speaker. It fails when no audio device is available.
func NewBell() (*Bell, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}
	return &Bell{frequency: BellFrequency, length: BellLength, volume: -1}, nil
}

// Play rings the bell and waits until it has finished or ctx is done.
func (bell *Bell) Play(ctx context.Context) error {
	done := make(chan struct{})
	tone := &effects.Volume{
		Streamer: Tone(SampleRate, bell.frequency, bell.length),
		Base:     2,
		Volume:   bell.volume,
	}
	speaker.Play(beep.Seq(tone, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
