package animation

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAlpha(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		duration time.Duration
		rising   bool
		want     float64
	}{
		{0, 100 * time.Millisecond, true, 0},
		{50 * time.Millisecond, 100 * time.Millisecond, true, 0.5},
		{100 * time.Millisecond, 100 * time.Millisecond, true, 1},
		{25 * time.Millisecond, 100 * time.Millisecond, false, 0.75},
		{200 * time.Millisecond, 100 * time.Millisecond, false, 0},
		{0, 0, true, 1},
		{0, 0, false, 0},
	}

	for _, tt := range tests {
		if got := Alpha(tt.elapsed, tt.duration, tt.rising); got != tt.want {
			t.Errorf("Alpha(%v, %v, %t) = %v, want %v", tt.elapsed, tt.duration, tt.rising, got, tt.want)
		}
	}
}

type alphaRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (recorder *alphaRecorder) apply(alpha float64) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.values = append(recorder.values, alpha)
}

func (recorder *alphaRecorder) snapshot() []float64 {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]float64(nil), recorder.values...)
}

func TestFaderPlaysFullSequence(t *testing.T) {
	recorder := &alphaRecorder{}
	fader := New(time.Millisecond, recorder.apply)
	done := make(chan struct{})

	fader.Play(context.Background(), Fade{In: 5 * time.Millisecond, Hold: 5 * time.Millisecond, Out: 5 * time.Millisecond}, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fade did not complete")
	}

	values := recorder.snapshot()
	if len(values) < 2 {
		t.Fatalf("values = %v, want at least the peak and the final value", values)
	}
	peak := 0.0
	for _, value := range values {
		if value < 0 || value > 1 {
			t.Fatalf("alpha %v out of range", value)
		}
		if value > peak {
			peak = value
		}
	}
	if peak != 1 {
		t.Errorf("peak alpha = %v, want 1", peak)
	}
	if last := values[len(values)-1]; last != 0 {
		t.Errorf("final alpha = %v, want 0", last)
	}
}

func TestFaderStopSkipsDone(t *testing.T) {
	fader := New(time.Millisecond, nil)
	done := make(chan struct{})

	fader.Play(context.Background(), Fade{Hold: time.Hour}, func() {
		close(done)
	})
	fader.Stop()

	select {
	case <-done:
		t.Fatal("onDone called after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}
