package sequencer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chargeup/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/chargeup/internal/adapters/linear"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/chargeup/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/chargeup/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/chargeup/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/chargeup/internal/core/ports"
)

// NodeID is the unique identifier for the sequencer Graft node.
const NodeID graft.ID = "engine.sequencer"

func init() {
	graft.Register(graft.Node[*Sequencer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.PublisherNodeID,
			fs.ProfileNodeID,
			progrock.NodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Sequencer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			publisher, err := graft.Dep[ports.Publisher](ctx)
			if err != nil {
				return nil, err
			}

			profiles, err := graft.Dep[ports.ProfileEditor](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewSequencer(runner, publisher, profiles, telemetry, reporter, log), nil
		},
	})
}
