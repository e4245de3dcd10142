package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chargeup/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
	// JournalNodeID is the unique identifier for the run journal reader node.
	JournalNodeID graft.ID = "adapter.journal"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			path, err := DefaultJournalPath()
			if err != nil {
				return nil, err
			}
			return New(path), nil
		},
	})

	graft.Register(graft.Node[ports.RunJournal]{
		ID:        JournalNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunJournal, error) {
			path, err := DefaultJournalPath()
			if err != nil {
				return nil, err
			}
			return NewJournal(path), nil
		},
	})
}
