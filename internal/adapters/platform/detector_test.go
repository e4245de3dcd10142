package platform_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/chargeup/internal/adapters/platform"
	"go.trai.ch/chargeup/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		goos string
		want domain.Platform
	}{
		{"linux", domain.Linux},
		{"darwin", domain.MacOS},
		{"windows", domain.Unsupported},
		{"freebsd", domain.Unsupported},
		{"plan9", domain.Unsupported},
		{"", domain.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, platform.Classify(tt.goos))
		})
	}
}

func TestDetector_DetectIsCached(t *testing.T) {
	calls := 0
	d := platform.NewDetectorFor("linux", func() (string, error) {
		calls++
		return "6.8.0-45-generic\n", nil
	})

	assert.Equal(t, domain.Linux, d.Detect())
	assert.Equal(t, "6.8.0-45-generic", d.KernelRelease())
	assert.Equal(t, "6.8.0-45-generic", d.KernelRelease())
	assert.Equal(t, 1, calls)
}

func TestDetector_KernelReleaseError(t *testing.T) {
	d := platform.NewDetectorFor("windows", func() (string, error) {
		return "", errors.New("no uname")
	})

	assert.Equal(t, domain.Unsupported, d.Detect())
	assert.Empty(t, d.KernelRelease())
}

func TestDetector_Host(t *testing.T) {
	d := platform.NewDetector()
	assert.Equal(t, platform.Classify(runtime.GOOS), d.Detect())
	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		assert.NotEmpty(t, d.KernelRelease())
	}
}
