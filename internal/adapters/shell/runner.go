// Package shell provides the os/exec backed command runner.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultElevator is the program used to run elevated commands.
	DefaultElevator = "sudo"

	// waitDelay bounds how long Wait keeps copying output after the process
	// exited, for children that leave descendants holding the pipes open.
	waitDelay = 5 * time.Second
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger   ports.Logger
	elevator string
	euid     func() int
	environ  func() []string
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger:   logger,
		elevator: DefaultElevator,
		euid:     os.Geteuid,
		environ:  os.Environ,
	}
}

// Run starts the command and waits for it to exit.
//
// Cancellation of ctx does not interrupt a running command; only the spec's
// own timeout does. Callers stop between commands instead.
func (r *Runner) Run(
	ctx context.Context,
	spec domain.CommandSpec,
	stdout, stderr io.Writer,
) (domain.CommandResult, error) {
	argv := r.argv(spec)
	if len(argv) == 0 {
		return domain.CommandResult{}, errors.Join(domain.ErrLaunchFailure, domain.ErrEmptyCommand)
	}

	runCtx := context.WithoutCancel(ctx)
	cancel := context.CancelFunc(func() {})
	if spec.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, spec.Timeout)
	}
	defer cancel()

	env := resolveEnvironment(r.environ(), spec.Env)

	executable := argv[0]
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(runCtx, executable, argv[1:]...) //nolint:gosec // commands come from the manifest
	cmd.Args[0] = argv[0]
	cmd.Dir = spec.Dir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = sink(spec.Capture, &outBuf, stdout)
	cmd.Stderr = sink(spec.Capture, &errBuf, stderr)

	if spec.Elevate && len(argv) != len(spec.Argv) {
		r.logger.Warn("running with elevated privileges: " + spec.String())
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		launchErr := zerr.With(zerr.Wrap(err, "failed to start command"), "command", spec.String())
		if spec.Dir != "" {
			launchErr = zerr.With(launchErr, "dir", spec.Dir)
		}
		return domain.CommandResult{}, errors.Join(domain.ErrLaunchFailure, launchErr)
	}

	waitErr := cmd.Wait()

	result := domain.CommandResult{
		ExitCode: -1,
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Duration: time.Since(start),
		TimedOut: errors.Is(runCtx.Err(), context.DeadlineExceeded),
	}

	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		result.Success = cmd.ProcessState.Success() && !result.TimedOut
	} else if waitErr == nil {
		result.ExitCode = 0
		result.Success = true
	}

	return result, nil
}

// argv returns the final argument vector, prefixed with the elevation
// program when the spec asks for it and the process is not already root.
func (r *Runner) argv(spec domain.CommandSpec) []string {
	if len(spec.Argv) == 0 {
		return nil
	}
	if !spec.Elevate || r.euid() == 0 {
		return spec.Argv
	}
	argv := make([]string, 0, len(spec.Argv)+1)
	argv = append(argv, r.elevator)
	return append(argv, spec.Argv...)
}

// sink combines the capture buffer with the caller's writer.
func sink(capture bool, buf *bytes.Buffer, w io.Writer) io.Writer {
	switch {
	case capture && w != nil:
		return io.MultiWriter(buf, w)
	case capture:
		return buf
	case w != nil:
		return w
	default:
		return io.Discard
	}
}
