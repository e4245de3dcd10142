package domain

import (
	"strings"
	"time"
)

// CommandSpec describes a single external command invocation.
// Argv is passed to the process as-is; no shell is involved unless argv[0]
// is a shell.
type CommandSpec struct {
	Argv []string
	// Capture keeps stdout and stderr in the CommandResult in addition to
	// streaming them to the caller's writers.
	Capture bool
	// Elevate runs the command through the elevation program (sudo).
	Elevate bool
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds variables added on top of the inherited environment.
	Env map[string]string
	// Timeout bounds the command's run time. Zero means no limit.
	Timeout time.Duration
}

// Name returns the executable name, or an empty string for an empty spec.
func (c CommandSpec) Name() string {
	if len(c.Argv) == 0 {
		return ""
	}
	return c.Argv[0]
}

// String renders the command line for display.
func (c CommandSpec) String() string {
	parts := make([]string, 0, len(c.Argv)+1)
	if c.Elevate {
		parts = append(parts, "sudo")
	}
	for _, arg := range c.Argv {
		if arg == "" || strings.ContainsAny(arg, " \t\"'$|&;<>") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// CommandResult is the outcome of a command that was started.
// Success is true iff the process exited with status zero.
type CommandResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}
