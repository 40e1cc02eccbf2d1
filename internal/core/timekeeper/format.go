package timekeeper

import (
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// FormatRemaining renders a duration as "HH : MM : SS".
func FormatRemaining(remaining time.Duration) string {
	hours, minutes, seconds := model.SplitClock(remaining)
	return fmt.Sprintf("%02d : %02d : %02d", hours, minutes, seconds)
}
