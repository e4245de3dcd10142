package domain

import (
	"strings"
	"time"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// StepLog is what the journal of the last run recorded for one step.
type StepLog struct {
	// Name is "<sequence>/<step>".
	Name      string
	Started   time.Time
	Completed time.Time
	// Cached is set when a pre-check found the step already satisfied.
	Cached bool
	// Err is the failure message, empty on success.
	Err    string
	Output string
}

// Sequence returns the sequence part of the name.
func (l *StepLog) Sequence() string {
	seq, _, _ := strings.Cut(l.Name, "/")
	return seq
}

// Status summarizes the recorded state of the step.
func (l *StepLog) Status() string {
	switch {
	case l.Err != "":
		return "failed"
	case l.Completed.IsZero():
		return "incomplete"
	case l.Cached:
		return "already installed"
	default:
		return "succeeded"
	}
}
