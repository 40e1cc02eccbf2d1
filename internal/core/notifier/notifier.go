// Package notifier turns phase elapsations into user-facing notification requests.
package notifier

import (
	"math/rand"
	"time"

	"pomodoro/internal/core/model"
)

// BellCue identifies the sound played when a phase ends.
const BellCue = "bell"

// Style describes how a presentation layer should render a notification.
type Style struct {
	FadeIn      time.Duration
	FadeOut     time.Duration
	Expire      time.Duration
	LargeFont   bool
	SuccessIcon bool
	UseThrobber bool
}

// DefaultStyle returns the toast styling used for phase notifications.
func DefaultStyle() Style {
	return Style{
		FadeIn:      100 * time.Millisecond,
		FadeOut:     500 * time.Millisecond,
		Expire:      1500 * time.Millisecond,
		LargeFont:   true,
		SuccessIcon: true,
	}
}

// Notification is a display request sent to the presentation layer.
type Notification struct {
	Text  string
	Sound bool
	Style Style
}

// Presenter plays sounds and displays notifications on behalf of the dispatcher.
type Presenter interface {
	PlaySound(cue string)
	ShowNotification(notification Notification)
}

var (
	workMessages = []string{
		"It's time to go back to work !",
		"Let's go working !",
		"Aw crap, here we go again...",
	}
	restMessages = []string{
		"Take some rest !",
		"Remember to drink !",
		"You should go out !",
	}
)

// WorkMessages returns the messages announcing an upcoming working phase.
func WorkMessages() []string {
	return append([]string(nil), workMessages...)
}

// RestMessages returns the messages announcing an upcoming rest phase.
func RestMessages() []string {
	return append([]string(nil), restMessages...)
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRand injects the random source used for message selection.
func WithRand(rng *rand.Rand) Option {
	return func(dispatcher *Dispatcher) {
		if rng != nil {
			dispatcher.rng = rng
		}
	}
}

// WithStyle overrides the notification style.
func WithStyle(style Style) Option {
	return func(dispatcher *Dispatcher) {
		dispatcher.style = style
	}
}

// Dispatcher selects a message for the phase that is starting and forwards it to a Presenter.
// Like the TimeKeeper it expects a single caller.
type Dispatcher struct {
	presenter    Presenter
	soundEnabled bool
	style        Style
	rng          *rand.Rand
}

// New creates a Dispatcher with sound enabled.
func New(presenter Presenter, options ...Option) *Dispatcher {
	dispatcher := &Dispatcher{
		presenter:    presenter,
		soundEnabled: true,
		style:        DefaultStyle(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(dispatcher)
	}
	return dispatcher
}

// Notify announces the phase following the one that ended.
// It has the shape of a timekeeper.PhaseElapsedHandler.
func (dispatcher *Dispatcher) Notify(wasWorking bool) {
	if dispatcher.presenter == nil {
		return
	}
	if dispatcher.soundEnabled {
		dispatcher.presenter.PlaySound(BellCue)
	}

	messages := workMessages
	if wasWorking {
		messages = restMessages
	}
	dispatcher.presenter.ShowNotification(Notification{
		Text:  messages[dispatcher.rng.Intn(len(messages))],
		Sound: dispatcher.soundEnabled,
		Style: dispatcher.style,
	})
}

// SoundEnabled reports whether a sound accompanies notifications.
func (dispatcher *Dispatcher) SoundEnabled() bool {
	return dispatcher.soundEnabled
}

// SetSoundEnabled toggles the notification sound.
func (dispatcher *Dispatcher) SetSoundEnabled(enabled bool) {
	dispatcher.soundEnabled = enabled
}

// Config returns the current notifier configuration.
func (dispatcher *Dispatcher) Config() model.NotifierConfig {
	return model.NotifierConfig{SoundEnabled: dispatcher.soundEnabled}
}

// ApplyConfig replaces the notifier configuration.
func (dispatcher *Dispatcher) ApplyConfig(config model.NotifierConfig) {
	dispatcher.soundEnabled = config.SoundEnabled
}

// ResetConfig restores the notifier defaults.
func (dispatcher *Dispatcher) ResetConfig() {
	dispatcher.ApplyConfig(model.DefaultNotifierConfig())
}
