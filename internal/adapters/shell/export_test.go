package shell

import "go.trai.ch/chargeup/internal/core/ports"

// NewRunnerWithIdentity creates a Runner with a fixed elevation program,
// effective user id and base environment.
func NewRunnerWithIdentity(logger ports.Logger, elevator string, euid int, environ []string) *Runner {
	r := NewRunner(logger)
	r.elevator = elevator
	r.euid = func() int { return euid }
	if environ != nil {
		r.environ = func() []string { return environ }
	}
	return r
}
