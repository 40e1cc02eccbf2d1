package session

import (
	"fmt"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// Status is a point-in-time view of the timer published to hosts.
type Status struct {
	State        timekeeper.State
	TimerText    string
	Working      bool
	CurrentCycle int
	CycleCount   int
	Remaining    time.Duration
	Config       model.TimerConfig
	SoundEnabled bool
}

// PhaseLabel renders e.g. "Working Time : 2 / 4".
func (status Status) PhaseLabel() string {
	phase := "Resting Time"
	if status.Working {
		phase = "Working Time"
	}
	return fmt.Sprintf("%s : %d / %d", phase, status.CurrentCycle, status.CycleCount)
}

// Editable reports whether the configuration may be changed.
func (status Status) Editable() bool {
	return status.State == timekeeper.StateStopped
}

// PhaseDuration is the full length of the current phase.
func (status Status) PhaseDuration() time.Duration {
	switch {
	case status.Working:
		return status.Config.Working
	case status.CurrentCycle == status.CycleCount:
		return status.Config.LongRest
	default:
		return status.Config.ShortRest
	}
}

// Progress is the elapsed share of the current phase, between 0 and 1.
func (status Status) Progress() float64 {
	total := status.PhaseDuration()
	if total <= 0 || status.State == timekeeper.StateStopped {
		return 0
	}
	progress := 1 - float64(status.Remaining)/float64(total)
	return min(max(progress, 0), 1)
}
