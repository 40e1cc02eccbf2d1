package timekeeper

import (
	"errors"
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// ErrConfigLocked indicates a configuration change was attempted while the timer was not stopped.
var ErrConfigLocked = errors.New("configuration can only change while the timer is stopped")

const tickStep = time.Second

// TimeKeeper is the pomodoro state machine. It is not safe for concurrent use:
// a single driver must call every method, including OnTick.
type TimeKeeper struct {
	config      model.TimerConfig
	state       State
	cycleIndex  int
	working     bool
	remaining   time.Duration
	timerText   string
	ticks       TickSource
	display     Display
	subscribers []PhaseElapsedHandler
}

// New creates a stopped TimeKeeper. ticks and display may be nil.
func New(config model.TimerConfig, ticks TickSource, display Display) *TimeKeeper {
	if config.CycleCount < 1 {
		config.CycleCount = 1
	}
	keeper := &TimeKeeper{
		config:  config,
		state:   StateStopped,
		ticks:   ticks,
		display: display,
	}
	keeper.updateTimerText()
	return keeper
}

// BindOnPhaseElapsed registers a handler invoked after every phase elapsation.
// Handlers run synchronously inside OnTick, in registration order.
func (keeper *TimeKeeper) BindOnPhaseElapsed(handler PhaseElapsedHandler) {
	if handler == nil {
		return
	}
	keeper.subscribers = append(keeper.subscribers, handler)
}

// Start begins a fresh session from Stopped or resumes from Paused.
func (keeper *TimeKeeper) Start() {
	resuming := keeper.state == StatePaused
	switch keeper.state {
	case StateRunning:
		return
	case StateStopped:
		keeper.cycleIndex = 0
		keeper.working = true
		keeper.remaining = keeper.config.Working
	}
	keeper.state = StateRunning
	keeper.updateTimerText()
	if keeper.ticks == nil {
		return
	}
	if resumer, ok := keeper.ticks.(Resumer); ok && resuming {
		resumer.Resume(keeper.OnTick)
		return
	}
	keeper.ticks.Start(keeper.OnTick)
}

// Stop halts the countdown and clears the remaining time.
func (keeper *TimeKeeper) Stop() {
	if keeper.state == StateStopped {
		return
	}
	if keeper.ticks != nil {
		keeper.ticks.Stop()
	}
	keeper.state = StateStopped
	keeper.remaining = 0
	keeper.updateTimerText()
}

// Pause freezes the countdown at the current remaining time.
func (keeper *TimeKeeper) Pause() {
	if keeper.state != StateRunning {
		return
	}
	if keeper.ticks != nil {
		keeper.ticks.Stop()
	}
	keeper.state = StatePaused
}

// OnTick advances the countdown by one second. Ticks delivered while not running are ignored.
func (keeper *TimeKeeper) OnTick() {
	if keeper.state != StateRunning {
		return
	}
	keeper.remaining -= tickStep
	if keeper.remaining < 0 {
		keeper.elapse()
	}
	keeper.updateTimerText()
}

func (keeper *TimeKeeper) elapse() {
	wasWorking := keeper.working
	if wasWorking {
		if keeper.cycleIndex == keeper.config.CycleCount-1 {
			keeper.remaining = keeper.config.LongRest
		} else {
			keeper.remaining = keeper.config.ShortRest
		}
	} else {
		keeper.cycleIndex = (keeper.cycleIndex + 1) % keeper.config.CycleCount
		keeper.remaining = keeper.config.Working
	}

	for _, handler := range keeper.subscribers {
		handler(wasWorking)
	}
	keeper.working = !wasWorking
}

func (keeper *TimeKeeper) updateTimerText() {
	keeper.timerText = FormatRemaining(keeper.remaining)
	if keeper.display != nil {
		keeper.display.SetTimerText(keeper.timerText)
	}
}

// TimerText returns the formatted remaining time.
func (keeper *TimeKeeper) TimerText() string {
	return keeper.timerText
}

// CurrentCycle returns the 1-based index of the cycle in progress.
func (keeper *TimeKeeper) CurrentCycle() int {
	return keeper.cycleIndex + 1
}

// CycleCount returns the configured number of cycles before a long rest.
func (keeper *TimeKeeper) CycleCount() int {
	return keeper.config.CycleCount
}

// WorkingDuration returns the configured working duration.
func (keeper *TimeKeeper) WorkingDuration() time.Duration {
	return keeper.config.Working
}

// ShortRestDuration returns the configured short rest duration.
func (keeper *TimeKeeper) ShortRestDuration() time.Duration {
	return keeper.config.ShortRest
}

// LongRestDuration returns the configured long rest duration.
func (keeper *TimeKeeper) LongRestDuration() time.Duration {
	return keeper.config.LongRest
}

// State returns the current state.
func (keeper *TimeKeeper) State() State {
	return keeper.state
}

// IsWorkingPhase reports whether a working phase is being counted down.
func (keeper *TimeKeeper) IsWorkingPhase() bool {
	return keeper.working
}

// Remaining returns the time left in the current phase, never below zero.
func (keeper *TimeKeeper) Remaining() time.Duration {
	if keeper.remaining < 0 {
		return 0
	}
	return keeper.remaining
}

// Config returns a copy of the current configuration.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	return keeper.config
}

// SetWorkingDuration replaces the working duration.
func (keeper *TimeKeeper) SetWorkingDuration(hours, minutes, seconds int) error {
	return keeper.setDuration("working duration", &keeper.config.Working, hours, minutes, seconds)
}

// SetShortRestDuration replaces the short rest duration.
func (keeper *TimeKeeper) SetShortRestDuration(hours, minutes, seconds int) error {
	return keeper.setDuration("short rest duration", &keeper.config.ShortRest, hours, minutes, seconds)
}

// SetLongRestDuration replaces the long rest duration.
func (keeper *TimeKeeper) SetLongRestDuration(hours, minutes, seconds int) error {
	return keeper.setDuration("long rest duration", &keeper.config.LongRest, hours, minutes, seconds)
}

// SetCycleCount replaces the number of cycles before a long rest.
func (keeper *TimeKeeper) SetCycleCount(count int) error {
	if keeper.state != StateStopped {
		return ErrConfigLocked
	}
	if err := model.ValidateCycleCount(count); err != nil {
		return err
	}
	keeper.config.CycleCount = count
	return nil
}

// ApplyConfig replaces the whole configuration.
func (keeper *TimeKeeper) ApplyConfig(config model.TimerConfig) error {
	if keeper.state != StateStopped {
		return ErrConfigLocked
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	keeper.config = config
	return nil
}

// ResetConfig restores the factory configuration.
func (keeper *TimeKeeper) ResetConfig() error {
	return keeper.ApplyConfig(model.FactoryTimerConfig())
}

func (keeper *TimeKeeper) setDuration(field string, target *time.Duration, hours, minutes, seconds int) error {
	if keeper.state != StateStopped {
		return ErrConfigLocked
	}
	value := model.ClockDuration(hours, minutes, seconds)
	if err := model.ValidateDuration(field, value); err != nil {
		return err
	}
	*target = value
	return nil
}
