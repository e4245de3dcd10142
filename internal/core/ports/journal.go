package ports

import "go.trai.ch/chargeup/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks

// RunJournal reads back what telemetry recorded during the last run.
type RunJournal interface {
	// Steps returns the recorded steps in the order they started. A missing
	// journal yields no steps and no error.
	Steps() ([]domain.StepLog, error)
}
