// Package platform classifies the host operating system.
package platform

import (
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/chargeup/internal/core/domain"
)

// GOOS values the detector recognises.
const (
	goosLinux  = "linux"
	goosDarwin = "darwin"
)

// Detector implements ports.PlatformDetector.
// Both answers are computed on first use and cached for the process lifetime.
type Detector struct {
	platform func() domain.Platform
	kernel   func() string
}

// NewDetector creates a Detector for the running host.
func NewDetector() *Detector {
	return newDetector(runtime.GOOS, kernelRelease)
}

func newDetector(goos string, uname func() (string, error)) *Detector {
	return &Detector{
		platform: sync.OnceValue(func() domain.Platform {
			return Classify(goos)
		}),
		kernel: sync.OnceValue(func() string {
			release, err := uname()
			if err != nil {
				return ""
			}
			return strings.TrimSpace(release)
		}),
	}
}

// Detect returns the host platform.
func (d *Detector) Detect() domain.Platform {
	return d.platform()
}

// KernelRelease returns the kernel release string, or "" when unavailable.
func (d *Detector) KernelRelease() string {
	return d.kernel()
}

// Classify maps a GOOS value onto a Platform.
func Classify(goos string) domain.Platform {
	switch goos {
	case goosLinux:
		return domain.Linux
	case goosDarwin:
		return domain.MacOS
	default:
		return domain.Unsupported
	}
}
