// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/chargeup/internal/core/domain"
)

// CommandRunner executes a single external command.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run starts the command described by spec and blocks until it exits.
	//
	// Output is streamed to stdout and stderr (either may be nil) and, when
	// spec.Capture is set, also returned in the result.
	//
	// A non-zero exit is reported through CommandResult.Success, not as an
	// error. The error is reserved for commands that could not be started and
	// wraps domain.ErrLaunchFailure.
	Run(ctx context.Context, spec domain.CommandSpec, stdout, stderr io.Writer) (domain.CommandResult, error)
}
