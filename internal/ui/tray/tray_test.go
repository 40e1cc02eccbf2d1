package tray

import (
	"testing"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/session"
	"pomodoro/resources"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		state timekeeper.State
		want  string
	}{
		{timekeeper.StateStopped, resources.IconStopped},
		{timekeeper.StatePaused, resources.IconPaused},
		{timekeeper.StateRunning, resources.IconRunning},
	}

	for _, tt := range tests {
		if got := IconFor(tt.state); got != tt.want {
			t.Errorf("IconFor(%s) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestManagerUpdate(t *testing.T) {
	manager := New(nil, Callbacks{})

	if manager.statusItem.Label != "Status: Stopped" {
		t.Errorf("initial status = %q", manager.statusItem.Label)
	}
	if manager.timerItem.Label != "00 : 00 : 00" {
		t.Errorf("initial timer = %q", manager.timerItem.Label)
	}

	manager.Update(session.Status{
		State:        timekeeper.StateRunning,
		TimerText:    "00 : 19 : 59",
		Working:      true,
		CurrentCycle: 1,
		CycleCount:   4,
		SoundEnabled: true,
	})

	if manager.timerItem.Label != "00 : 19 : 59" {
		t.Errorf("timer = %q", manager.timerItem.Label)
	}
	if manager.phaseItem.Label != "Working Time : 1 / 4" {
		t.Errorf("phase = %q", manager.phaseItem.Label)
	}
	if !manager.startItem.Disabled || manager.pauseItem.Disabled || manager.stopItem.Disabled {
		t.Error("running state should only allow pause and stop")
	}
	if !manager.reloadItem.Disabled || !manager.resetItem.Disabled {
		t.Error("reload and reset should be locked while running")
	}
	if !manager.soundItem.Checked {
		t.Error("sound item should be checked")
	}
	if manager.icon != resources.IconRunning {
		t.Errorf("icon = %q", manager.icon)
	}

	manager.Update(session.Status{State: timekeeper.StatePaused})
	if manager.startItem.Label != "Resume" || manager.startItem.Disabled {
		t.Errorf("paused start item = %q disabled=%t", manager.startItem.Label, manager.startItem.Disabled)
	}
	if !manager.pauseItem.Disabled {
		t.Error("pause should be disabled while paused")
	}
}

func TestSoundItemToggles(t *testing.T) {
	var got []bool
	manager := New(nil, Callbacks{OnSound: func(enabled bool) { got = append(got, enabled) }})

	manager.Update(session.Status{SoundEnabled: true})
	manager.soundItem.Action()
	manager.Update(session.Status{SoundEnabled: false})
	manager.soundItem.Action()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("sound toggles = %v, want [false true]", got)
	}
}

func TestCallbacksCanBeSetAfterNew(t *testing.T) {
	manager := New(nil, Callbacks{})
	started := false
	manager.callbacks.OnStart = func() { started = true }

	manager.startItem.Action()
	if !started {
		t.Error("start callback not invoked")
	}
}
