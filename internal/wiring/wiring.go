// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/chargeup/internal/adapters/cas"
	_ "go.trai.ch/chargeup/internal/adapters/config"
	_ "go.trai.ch/chargeup/internal/adapters/fs"
	_ "go.trai.ch/chargeup/internal/adapters/linear"
	_ "go.trai.ch/chargeup/internal/adapters/logger"
	_ "go.trai.ch/chargeup/internal/adapters/platform"
	_ "go.trai.ch/chargeup/internal/adapters/shell"
	_ "go.trai.ch/chargeup/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/chargeup/internal/app"
	_ "go.trai.ch/chargeup/internal/engine/sequencer"
)
