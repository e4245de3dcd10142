package domain

import "go.trai.ch/zerr"

var (
	// ErrLaunchFailure is returned when a command cannot be started at all
	// (executable not found, not executable).
	ErrLaunchFailure = zerr.New("failed to launch command")

	// ErrNonZeroExit is returned when a command ran and exited with a non-zero status.
	ErrNonZeroExit = zerr.New("command exited with non-zero status")

	// ErrCommandTimeout is returned when a command exceeded its timeout and was killed.
	ErrCommandTimeout = zerr.New("command timed out")

	// ErrEmptyCommand is returned when a command has no argv.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrUnsupportedPlatform is returned when the host OS is neither Linux nor macOS.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrArtifactMissing is returned when the build reported success but the
	// expected artifact is absent.
	ErrArtifactMissing = zerr.New("build succeeded but artifact absent")

	// ErrPublishFailure is returned when the install directory or the link cannot be created.
	ErrPublishFailure = zerr.New("failed to publish artifact")

	// ErrProfileUpdateFailed is returned when a shell profile line cannot be written.
	ErrProfileUpdateFailed = zerr.New("failed to update shell profile")

	// ErrSequenceFailed is returned when a sequence halted on a failed step.
	ErrSequenceFailed = zerr.New("sequence failed")

	// ErrSequenceInterrupted is returned when a sequence stopped before a step
	// because its context was cancelled.
	ErrSequenceInterrupted = zerr.New("sequence interrupted")

	// ErrSequenceNotFound is returned when a requested sequence is not declared.
	ErrSequenceNotFound = zerr.New("sequence not found")

	// ErrNoSequencesSpecified is returned when install is called without sequences.
	ErrNoSequencesSpecified = zerr.New("no sequences specified")

	// ErrNoPublishTarget is returned when the manifest has no publish section.
	ErrNoPublishTarget = zerr.New("manifest has no publish target")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the manifest is structurally invalid.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrTemplateFailed is returned when a command template cannot be rendered.
	ErrTemplateFailed = zerr.New("failed to render command template")

	// ErrEnvFileFailed is returned when an env file cannot be loaded.
	ErrEnvFileFailed = zerr.New("failed to load env file")

	// ErrStoreReadFailed is returned when the receipt store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read receipt store")

	// ErrStoreWriteFailed is returned when the receipt store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write receipt store")

	// ErrJournalReadFailed is returned when the journal of the last run cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read run journal")

	// ErrUnknownLogFormat is returned for an unrecognised --log-format value.
	ErrUnknownLogFormat = zerr.New("unknown log format, expected 'pretty', 'json' or 'tint'")
)
