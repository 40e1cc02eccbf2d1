// Package logging is a leveled wrapper over the standard logger. The level
// follows the -v count or an explicit --log-level.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
)

// Level represents logging severity.
type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	currentLevel     atomic.Int32
	currentVerbosity atomic.Int32
)

func init() {
	currentLevel.Store(int32(LevelWarn))
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > 4 {
		count = 4
	}
	currentVerbosity.Store(int32(count))
	switch count {
	case 0:
		SetLevel(LevelWarn)
	case 1:
		SetLevel(LevelInfo)
	case 2:
		SetLevel(LevelDebug)
	default:
		SetLevel(LevelTrace)
	}
}

// SetLevel sets the level directly, leaving the verbosity count untouched.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	return Level(currentLevel.Load())
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	return int(currentVerbosity.Load())
}

// LevelName returns current level label.
func LevelName() string {
	return LevelToString(CurrentLevel())
}

// SetOutput redirects log output, e.g. to a log file or io.Discard while a TUI owns the terminal.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// LevelToString converts a Level to human readable text.
func LevelToString(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, 0, nil
	case "warn", "warning":
		return LevelWarn, 0, nil
	case "info":
		return LevelInfo, 1, nil
	case "debug":
		return LevelDebug, 2, nil
	case "trace":
		return LevelTrace, 4, nil
	default:
		return LevelWarn, Verbosity(), fmt.Errorf("unknown level %s", s)
	}
}

func shouldLog(l Level) bool {
	return l <= CurrentLevel()
}

func logf(l Level, prefix, format string, args ...any) {
	if !shouldLog(l) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", strings.ToUpper(prefix), msg)
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logf(LevelError, "err", format, args...)
}

// Warnf prints at the default level and above.
func Warnf(format string, args ...any) {
	logf(LevelWarn, "warn", format, args...)
}

// Infof prints with -v.
func Infof(format string, args ...any) {
	logf(LevelInfo, "info", format, args...)
}

// Debugf prints with -vv.
func Debugf(format string, args ...any) {
	logf(LevelDebug, "dbg", format, args...)
}

// Tracef prints with -vvv or more; the session loop logs ticker arming here.
func Tracef(format string, args ...any) {
	logf(LevelTrace, "trc", format, args...)
}
