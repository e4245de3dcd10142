package ports

import "go.trai.ch/chargeup/internal/core/domain"

// PlatformDetector classifies the host.
//
//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks
type PlatformDetector interface {
	// Detect returns the host platform. It never fails; unknown hosts are
	// domain.Unsupported.
	Detect() domain.Platform

	// KernelRelease returns the running kernel release (uname -r), or an
	// empty string when it cannot be determined.
	KernelRelease() string
}
