package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chargeup/internal/adapters/shell"
	"go.trai.ch/chargeup/internal/core/ports"
)

const (
	// PublisherNodeID is the unique identifier for the publisher Graft node.
	PublisherNodeID graft.ID = "adapter.fs.publisher"
	// ProfileNodeID is the unique identifier for the profile editor Graft node.
	ProfileNodeID graft.ID = "adapter.fs.profile"
)

func init() {
	graft.Register(graft.Node[ports.Publisher]{
		ID:        PublisherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Publisher, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewPublisher(runner), nil
		},
	})

	graft.Register(graft.Node[ports.ProfileEditor]{
		ID:        ProfileNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProfileEditor, error) {
			return NewProfileEditor(), nil
		},
	})
}
