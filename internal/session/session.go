// Package session drives the single-threaded timer core from one goroutine so that
// concurrent hosts (tray, terminal UI, shell) can issue commands safely.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/notifier"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logging"
)

var (
	// ErrClosed is returned by commands issued after Run has returned.
	ErrClosed = errors.New("session closed")
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("session already running")
)

// DefaultTickInterval is the real-time period between engine ticks.
const DefaultTickInterval = time.Second

// Store persists timer and sound preferences.
type Store interface {
	Load() (model.TimerConfig, error)
	Save(config model.TimerConfig) error
	LoadSoundPreference() (bool, error)
	SaveSoundPreference(enabled bool) error
}

// Presenter renders session output. Methods are called from the session goroutine
// and must not call back into session commands synchronously.
type Presenter interface {
	notifier.Presenter
	ShowStatus(status Status)
}

// Option customizes a Session.
type Option func(*Session)

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(interval time.Duration) Option {
	return func(s *Session) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithTickerFactory replaces the time.Ticker based tick source.
func WithTickerFactory(factory TickerFactory) Option {
	return func(s *Session) {
		if factory != nil {
			s.newTicker = factory
		}
	}
}

// WithRand seeds notification message selection.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

type request struct {
	run    func() error
	result chan error
}

// Session owns a TimeKeeper and a Dispatcher and serializes all access to them.
type Session struct {
	keeper     *timekeeper.TimeKeeper
	dispatcher *notifier.Dispatcher
	store      Store
	presenter  Presenter

	interval  time.Duration
	newTicker TickerFactory
	rng       *rand.Rand

	// loop-owned
	ticker    Ticker
	tickC     <-chan time.Time
	onTick    func()
	tickNow   bool
	timerText string

	commands chan request
	done     chan struct{}
	started  atomic.Bool

	mu   sync.RWMutex
	last Status
}

// New loads persisted preferences and prepares a stopped session.
// Load failures are logged and replaced by defaults.
func New(store Store, presenter Presenter, options ...Option) (*Session, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	s := &Session{
		store:     store,
		presenter: presenter,
		interval:  DefaultTickInterval,
		newTicker: NewTimeTicker,
		commands:  make(chan request),
		done:      make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}

	var notifierPresenter notifier.Presenter
	if presenter != nil {
		notifierPresenter = presenter
	}
	var dispatcherOptions []notifier.Option
	if s.rng != nil {
		dispatcherOptions = append(dispatcherOptions, notifier.WithRand(s.rng))
	}
	s.dispatcher = notifier.New(notifierPresenter, dispatcherOptions...)
	s.dispatcher.SetSoundEnabled(loadSound(store))

	port := loopPort{s: s}
	s.keeper = timekeeper.New(loadTimerConfig(store), port, port)
	s.keeper.BindOnPhaseElapsed(func(wasWorking bool) {
		logging.Debugf("phase elapsed (was working: %t)", wasWorking)
	})
	s.keeper.BindOnPhaseElapsed(s.dispatcher.Notify)

	s.last = s.snapshot()
	return s, nil
}

func loadTimerConfig(store Store) model.TimerConfig {
	config, err := store.Load()
	if err != nil {
		logging.Warnf("load timer config: %v; using defaults", err)
		return model.DefaultTimerConfig()
	}
	if err := config.Validate(); err != nil {
		logging.Warnf("stored timer config rejected: %v; using defaults", err)
		return model.DefaultTimerConfig()
	}
	return config
}

func loadSound(store Store) bool {
	enabled, err := store.LoadSoundPreference()
	if err != nil {
		logging.Warnf("load sound preference: %v; using default", err)
		return model.DefaultNotifierConfig().SoundEnabled
	}
	return enabled
}

// Run processes commands and ticks until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.done)
	defer s.disarm()

	logging.Infof("session started (tick interval %s)", s.interval)
	s.publish()

	for {
		select {
		case <-ctx.Done():
			logging.Infof("session stopped")
			return nil
		case req := <-s.commands:
			err := req.run()
			if s.tickNow {
				s.tickNow = false
				if s.onTick != nil {
					s.onTick()
				}
			}
			s.publish()
			req.result <- err
		case <-s.tickC:
			if s.onTick != nil {
				s.onTick()
			}
			s.publish()
		}
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// loopPort adapts the session loop to the engine's TickSource and Display ports.
// Its methods are only called by the engine, which only runs on the loop goroutine.
type loopPort struct {
	s *Session
}

func (port loopPort) Start(tick func()) {
	s := port.s
	s.disarm()
	s.onTick = tick
	s.ticker = s.newTicker(s.interval)
	s.tickC = s.ticker.C()
	logging.Tracef("ticker armed")
}

// Resume arms the ticker and has the loop deliver one tick as soon as the
// resuming command returns.
func (port loopPort) Resume(tick func()) {
	port.Start(tick)
	port.s.tickNow = true
}

func (port loopPort) Stop() {
	port.s.disarm()
}

func (port loopPort) SetTimerText(text string) {
	port.s.timerText = text
}

func (s *Session) disarm() {
	if s.ticker != nil {
		s.ticker.Stop()
		logging.Tracef("ticker disarmed")
	}
	s.ticker = nil
	s.tickC = nil
	s.tickNow = false
}

func (s *Session) snapshot() Status {
	return Status{
		State:        s.keeper.State(),
		TimerText:    s.timerText,
		Working:      s.keeper.IsWorkingPhase(),
		CurrentCycle: s.keeper.CurrentCycle(),
		CycleCount:   s.keeper.CycleCount(),
		Remaining:    s.keeper.Remaining(),
		Config:       s.keeper.Config(),
		SoundEnabled: s.dispatcher.SoundEnabled(),
	}
}

func (s *Session) publish() {
	status := s.snapshot()
	s.mu.Lock()
	s.last = status
	s.mu.Unlock()
	if s.presenter != nil {
		s.presenter.ShowStatus(status)
	}
}

func (s *Session) do(run func() error) error {
	req := request{run: run, result: make(chan error, 1)}
	select {
	case s.commands <- req:
	case <-s.done:
		return ErrClosed
	}
	return <-req.result
}

// Last returns the most recently published status without waiting for the loop.
func (s *Session) Last() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Snapshot returns the current status as seen by the loop.
func (s *Session) Snapshot() (Status, error) {
	var status Status
	err := s.do(func() error {
		status = s.snapshot()
		return nil
	})
	return status, err
}

// StartTimer starts a fresh session or resumes a paused one.
func (s *Session) StartTimer() error {
	return s.do(func() error {
		s.keeper.Start()
		return nil
	})
}

// PauseTimer freezes the countdown.
func (s *Session) PauseTimer() error {
	return s.do(func() error {
		s.keeper.Pause()
		return nil
	})
}

// StopTimer halts the countdown and resets the display.
func (s *Session) StopTimer() error {
	return s.do(func() error {
		s.keeper.Stop()
		return nil
	})
}

// SetWorkingDuration changes the working duration while stopped.
func (s *Session) SetWorkingDuration(hours, minutes, seconds int) error {
	return s.do(func() error {
		return s.keeper.SetWorkingDuration(hours, minutes, seconds)
	})
}

// SetShortRestDuration changes the short rest duration while stopped.
func (s *Session) SetShortRestDuration(hours, minutes, seconds int) error {
	return s.do(func() error {
		return s.keeper.SetShortRestDuration(hours, minutes, seconds)
	})
}

// SetLongRestDuration changes the long rest duration while stopped.
func (s *Session) SetLongRestDuration(hours, minutes, seconds int) error {
	return s.do(func() error {
		return s.keeper.SetLongRestDuration(hours, minutes, seconds)
	})
}

// SetCycleCount changes the number of cycles before a long rest while stopped.
func (s *Session) SetCycleCount(count int) error {
	return s.do(func() error {
		return s.keeper.SetCycleCount(count)
	})
}

// SetSoundEnabled toggles the notification sound. Allowed in any state.
func (s *Session) SetSoundEnabled(enabled bool) error {
	return s.do(func() error {
		s.dispatcher.SetSoundEnabled(enabled)
		return nil
	})
}

// ApplyConfig replaces the timer configuration while stopped.
func (s *Session) ApplyConfig(config model.TimerConfig) error {
	return s.do(func() error {
		return s.keeper.ApplyConfig(config)
	})
}

// ReloadConfig re-reads the store, discarding unsaved changes.
func (s *Session) ReloadConfig() error {
	return s.do(func() error {
		if s.keeper.State() != timekeeper.StateStopped {
			return timekeeper.ErrConfigLocked
		}
		config, err := s.store.Load()
		if err != nil {
			return fmt.Errorf("reload timer config: %w", err)
		}
		enabled, err := s.store.LoadSoundPreference()
		if err != nil {
			return fmt.Errorf("reload sound preference: %w", err)
		}
		if err := s.keeper.ApplyConfig(config); err != nil {
			return err
		}
		s.dispatcher.SetSoundEnabled(enabled)
		logging.Infof("configuration reloaded")
		return nil
	})
}

// ResetConfig restores factory values without saving them.
func (s *Session) ResetConfig() error {
	return s.do(func() error {
		if err := s.keeper.ResetConfig(); err != nil {
			return err
		}
		s.dispatcher.ResetConfig()
		logging.Infof("configuration reset to factory values")
		return nil
	})
}

// SaveConfig persists the current timer configuration and sound preference.
func (s *Session) SaveConfig() error {
	return s.do(func() error {
		if err := s.store.Save(s.keeper.Config()); err != nil {
			return fmt.Errorf("save timer config: %w", err)
		}
		if err := s.store.SaveSoundPreference(s.dispatcher.SoundEnabled()); err != nil {
			return fmt.Errorf("save sound preference: %w", err)
		}
		logging.Infof("configuration saved")
		return nil
	})
}
