package config

import "go.trai.ch/chargeup/internal/core/ports"

// NewLoaderForHost creates a Loader with fixed host facts.
func NewLoaderForHost(detector ports.PlatformDetector, home, goos, goarch string, env map[string]string) *Loader {
	l := NewLoader(detector)
	l.homeDir = func() (string, error) { return home, nil }
	l.getenv = func(name string) string { return env[name] }
	l.goos = goos
	l.goarch = goarch
	return l
}
