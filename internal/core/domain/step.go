package domain

import (
	"slices"
	"time"
)

// ProfileLine is a line that must be present in a user's shell profile once a
// step has succeeded, typically a PATH export.
type ProfileLine struct {
	File string
	Line string
}

// InstallStep is a named, platform-scoped unit of installation work.
type InstallStep struct {
	// ID is the human-readable label, e.g. "install LLVM 17".
	ID string
	// Platforms the step applies to. Empty means every supported platform.
	Platforms []Platform
	// Check is an optional idempotency probe; its success means the step
	// has nothing to do.
	Check *CommandSpec
	// Commands run in order; the first failure ends the step.
	Commands []CommandSpec
	// Profile is appended to a shell profile after the commands succeed.
	Profile *ProfileLine
	// Notes is shown to the user after the step succeeds.
	Notes string
}

// AppliesTo reports whether the step runs on p. Unsupported never applies.
func (s *InstallStep) AppliesTo(p Platform) bool {
	if !p.Supported() {
		return false
	}
	if len(s.Platforms) == 0 {
		return true
	}
	return slices.Contains(s.Platforms, p)
}

// StepStatus is the terminal state of an executed step.
type StepStatus uint8

const (
	// StepSkipped means the step did not run any install command.
	StepSkipped StepStatus = iota
	// StepSucceeded means every command of the step exited with status zero.
	StepSucceeded
	// StepFailed means a command could not run or exited non-zero.
	StepFailed
)

// String returns the status name.
func (s StepStatus) String() string {
	switch s {
	case StepSkipped:
		return "skipped"
	case StepSucceeded:
		return "succeeded"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SkipReason explains a Skipped outcome.
type SkipReason string

const (
	// SkipPlatformMismatch is used when the step is scoped to other platforms.
	SkipPlatformMismatch SkipReason = "not applicable on this platform"
	// SkipAlreadyInstalled is used when the pre-check succeeded.
	SkipAlreadyInstalled SkipReason = "already installed"
)

// StepOutcome is the result of executing one InstallStep.
type StepOutcome struct {
	Status StepStatus
	// Reason is set for skipped steps.
	Reason SkipReason
	// Err carries the failure detail, including captured stderr, for failed steps.
	Err error
	// Notes are forwarded from the step on success.
	Notes    string
	Duration time.Duration
}

// Skipped builds a Skipped outcome.
func Skipped(reason SkipReason) StepOutcome {
	return StepOutcome{Status: StepSkipped, Reason: reason}
}

// Succeeded builds a Succeeded outcome.
func Succeeded() StepOutcome {
	return StepOutcome{Status: StepSucceeded}
}

// Failed builds a Failed outcome carrying err as its detail.
func Failed(err error) StepOutcome {
	return StepOutcome{Status: StepFailed, Err: err}
}

// StepResult pairs a step identifier with its outcome inside a report.
type StepResult struct {
	StepID  string
	Outcome StepOutcome
}
