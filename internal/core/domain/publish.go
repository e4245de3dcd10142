package domain

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Elevation controls when privileged commands are used to publish an artifact.
type Elevation string

const (
	// ElevateAuto elevates only when the target location is not writable.
	ElevateAuto Elevation = "auto"
	// ElevateAlways always goes through the elevation program.
	ElevateAlways Elevation = "always"
	// ElevateNever never elevates; permission errors are reported as is.
	ElevateNever Elevation = "never"
)

// ParseElevation converts a configuration value. Empty means ElevateAuto.
func ParseElevation(s string) (Elevation, bool) {
	switch e := Elevation(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return ElevateAuto, true
	case ElevateAuto, ElevateAlways, ElevateNever:
		return e, true
	default:
		return "", false
	}
}

// PublishTarget describes the build-and-link pipeline: build the project,
// then expose the artifact under InstallDir/LinkName.
type PublishTarget struct {
	// ProjectRoot is the directory the build runs in and relative artifact
	// paths resolve against.
	ProjectRoot string
	Build       CommandSpec
	// Artifact is the path the build leaves its output at.
	Artifact   string
	InstallDir string
	LinkName   string
	Elevation  Elevation
}

// ArtifactPath returns the absolute artifact path.
func (t *PublishTarget) ArtifactPath() string {
	if filepath.IsAbs(t.Artifact) {
		return filepath.Clean(t.Artifact)
	}
	return filepath.Join(t.ProjectRoot, t.Artifact)
}

// LinkPath returns the path of the symbolic link that is created or replaced.
func (t *PublishTarget) LinkPath() string {
	return filepath.Join(t.InstallDir, t.LinkName)
}

// Fingerprint returns a stable digest of the pipeline definition.
func (t *PublishTarget) Fingerprint() string {
	d := xxhash.New()
	for _, v := range []string{t.Build.String(), t.Build.Dir, t.ArtifactPath(), t.LinkPath(), string(t.Elevation)} {
		_, _ = d.WriteString(v)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
