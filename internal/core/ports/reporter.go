package ports

import (
	"io"

	"go.trai.ch/chargeup/internal/core/domain"
)

// Reporter presents sequence progress to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnSequenceStart is called before the first step of a sequence.
	OnSequenceStart(sequence string, platform domain.Platform)

	// OnStepStart is called before a step's pre-check or commands run.
	OnStepStart(stepID string)

	// StepOutput returns the writer that receives the step's command output.
	StepOutput(stepID string) io.Writer

	// OnStepComplete is called once per executed step.
	OnStepComplete(stepID string, outcome domain.StepOutcome)

	// OnSequenceComplete is called with the final report.
	OnSequenceComplete(report *domain.SequenceReport)

	// OnPlan prints a dry-run plan.
	OnPlan(plan *domain.Plan)
}
