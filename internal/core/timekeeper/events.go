package timekeeper

// State represents the current TimeKeeper mode.
type State int

const (
	StateStopped State = iota
	StatePaused
	StateRunning
)

// String returns the label shown by hosts.
func (state State) String() string {
	switch state {
	case StateStopped:
		return "Stopped"
	case StatePaused:
		return "Paused"
	case StateRunning:
		return "Running"
	default:
		return "Error"
	}
}

// PhaseElapsedHandler receives whether the phase that just ended was a working phase.
type PhaseElapsedHandler func(wasWorking bool)

// TickSource delivers ticks to the TimeKeeper while it is running.
type TickSource interface {
	Start(tick func())
	Stop()
}

// Resumer is implemented by tick sources that deliver the first tick
// immediately when a paused countdown resumes. Sources without it are
// restarted with Start, so the first tick waits a full interval.
type Resumer interface {
	Resume(tick func())
}

// Display receives the formatted remaining time.
type Display interface {
	SetTimerText(text string)
}
