// Package audio synthesizes the notification bell for machines without a
// sound command.
package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// SampleRate is the rate the speaker is initialized with.
const SampleRate beep.SampleRate = 44100

// Default bell tone.
const (
	BellFrequency = 880.0
	BellLength    = 700 * time.Millisecond
	bellDecay     = 6.0
)

// Tone returns a sine wave at frequency that decays exponentially and ends
// after length.
func Tone(rate beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := rate.N(length)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if position >= total {
				return i, i > 0
			}
			t := float64(position) / float64(rate)
			value := math.Sin(2*math.Pi*frequency*t) * math.Exp(-bellDecay*t)
			samples[i][0] = value
			samples[i][1] = value
			position++
		}
		return len(samples), true
	})
}
