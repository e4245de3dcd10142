package ports

import "go.trai.ch/chargeup/internal/core/domain"

// ReceiptStore persists the outcome of the last run of each sequence.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReceiptStore interface {
	// Get returns the receipt for a sequence. Returns nil, nil if not found.
	Get(sequence string) (*domain.Receipt, error)

	// Put stores a receipt, replacing any previous one for the same sequence.
	Put(receipt domain.Receipt) error

	// List returns all receipts ordered by sequence name.
	List() ([]domain.Receipt, error)
}
