package ports

import (
	"context"

	"go.trai.ch/chargeup/internal/core/domain"
)

// Publisher performs the filesystem half of the build-and-link pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// VerifyArtifact returns an error wrapping domain.ErrArtifactMissing when
	// path does not exist or is a directory.
	VerifyArtifact(path string) error

	// EnsureDir creates dir when it does not exist.
	// Errors wrap domain.ErrPublishFailure and name the failing path.
	EnsureDir(ctx context.Context, dir string, elevation domain.Elevation) error

	// Link atomically creates or replaces the symbolic link at link so that
	// it points at artifact. Errors wrap domain.ErrPublishFailure.
	Link(ctx context.Context, artifact, link string, elevation domain.Elevation) error
}

// ProfileEditor maintains lines in user shell profiles.
type ProfileEditor interface {
	// EnsureLine appends line to the file at path unless it is already present.
	EnsureLine(path, line string) error
}
