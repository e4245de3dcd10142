package ports

import "go.trai.ch/chargeup/internal/core/domain"

// ConfigLoader loads the installer manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at path, rendering command templates against
	// projectRoot. An empty path selects the built-in manifest.
	Load(path, projectRoot string) (*domain.Manifest, error)
}
