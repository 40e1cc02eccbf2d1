package animation

import (
	"context"
	"sync"
	"time"
)

// DefaultFrame is the interval between opacity updates.
const DefaultFrame = 16 * time.Millisecond

// Fade describes a fade-in, hold, fade-out sequence.
type Fade struct {
	In   time.Duration
	Hold time.Duration
	Out  time.Duration
}

// Total returns the length of the whole sequence.
func (fade Fade) Total() time.Duration {
	return fade.In + fade.Hold + fade.Out
}

// Fader drives an opacity value between 0 and 1 over time.
type Fader struct {
	mu     sync.Mutex
	frame  time.Duration
	apply  func(alpha float64)
	cancel context.CancelFunc
}

// New creates a Fader that reports opacity through apply. apply runs on the
// fader goroutine; UI code must hop to its own thread.
func New(frame time.Duration, apply func(alpha float64)) *Fader {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Fader{frame: frame, apply: apply}
}

// Play runs fade, replacing any sequence in progress. onDone is called only if
// the sequence completes without being stopped or replaced.
func (fader *Fader) Play(ctx context.Context, fade Fade, onDone func()) {
	fader.start(ctx, func(runCtx context.Context) {
		if !fader.ramp(runCtx, fade.In, true) {
			return
		}
		if !sleepWithContext(runCtx, fade.Hold) {
			return
		}
		if !fader.ramp(runCtx, fade.Out, false) {
			return
		}
		if onDone != nil {
			onDone()
		}
	})
}

// Stop terminates any active sequence.
func (fader *Fader) Stop() {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	if fader.cancel != nil {
		fader.cancel()
		fader.cancel = nil
	}
}

func (fader *Fader) start(parent context.Context, run func(context.Context)) {
	fader.mu.Lock()
	if fader.cancel != nil {
		fader.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	fader.cancel = cancel
	fader.mu.Unlock()

	go run(runCtx)
}

func (fader *Fader) ramp(ctx context.Context, duration time.Duration, rising bool) bool {
	start := time.Now()
	for {
		elapsed := time.Since(start)
		if elapsed >= duration {
			fader.emit(ctx, Alpha(duration, duration, rising))
			return ctx.Err() == nil
		}
		fader.emit(ctx, Alpha(elapsed, duration, rising))
		if !sleepWithContext(ctx, fader.frame) {
			return false
		}
	}
}

func (fader *Fader) emit(ctx context.Context, alpha float64) {
	if ctx.Err() != nil || fader.apply == nil {
		return
	}
	fader.apply(alpha)
}

// Alpha returns the opacity after elapsed of a ramp lasting duration.
// A zero duration jumps straight to the end value.
func Alpha(elapsed, duration time.Duration, rising bool) float64 {
	progress := 1.0
	if duration > 0 && elapsed < duration {
		progress = float64(elapsed) / float64(duration)
	}
	if progress < 0 {
		progress = 0
	}
	if rising {
		return progress
	}
	return 1 - progress
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
