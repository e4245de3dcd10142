package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chargeup/internal/adapters/platform"
	"go.trai.ch/chargeup/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{platform.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			detector, err := graft.Dep[ports.PlatformDetector](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(detector), nil
		},
	})
}
