package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/chargeup/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/adapters/linear"             //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/adapters/platform"           //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/chargeup/internal/engine/sequencer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			platform.NodeID,
			sequencer.NodeID,
			cas.NodeID,
			progrock.JournalNodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[ports.PlatformDetector](ctx)
	if err != nil {
		return nil, err
	}

	seq, err := graft.Dep[*sequencer.Sequencer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReceiptStore](ctx)
	if err != nil {
		return nil, err
	}

	journal, err := graft.Dep[ports.RunJournal](ctx)
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

	return New(loader, detector, seq, store, journal, reporter, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
