package domain

import "strings"

// Platform classifies the host operating system into the closed set of
// platforms the installers know how to handle.
type Platform uint8

const (
	// Unsupported is any host that is neither Linux nor macOS.
	Unsupported Platform = iota
	// Linux is any Linux distribution.
	Linux
	// MacOS is Apple macOS (GOOS "darwin").
	MacOS
)

// SupportedPlatforms lists every platform a step may be scoped to.
var SupportedPlatforms = []Platform{Linux, MacOS}

// String returns the lower-case platform name used in configuration files.
func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	default:
		return "unsupported"
	}
}

// Supported reports whether steps can ever run on p.
func (p Platform) Supported() bool {
	return p == Linux || p == MacOS
}

// ParsePlatform converts a configuration name to a Platform.
// It accepts "linux", "macos" and "darwin" case-insensitively; anything else
// yields Unsupported and false.
func ParsePlatform(name string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return Linux, true
	case "macos", "darwin", "mac":
		return MacOS, true
	default:
		return Unsupported, false
	}
}
