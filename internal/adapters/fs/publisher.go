// Package fs provides the filesystem adapters: artifact publishing and shell
// profile editing.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Publisher = (*Publisher)(nil)

// dirPerm is used for install directories created without elevation.
const dirPerm = 0o755

// Publisher implements ports.Publisher on the local filesystem. Operations
// that need privileges go through the command runner.
type Publisher struct {
	runner   ports.CommandRunner
	writable func(path string) bool
	mvFlags  []string
}

// NewPublisher creates a new Publisher.
func NewPublisher(runner ports.CommandRunner) *Publisher {
	return &Publisher{runner: runner, writable: writable, mvFlags: renameFlags(runtime.GOOS)}
}

// renameFlags returns the mv flags that replace a symlink without following
// it when it points at a directory.
func renameFlags(goos string) []string {
	switch goos {
	case "linux":
		return []string{"-f", "-T"}
	case "darwin", "freebsd", "openbsd", "netbsd":
		return []string{"-f", "-h"}
	default:
		return []string{"-f"}
	}
}

// VerifyArtifact checks that path exists and is not a directory.
func (p *Publisher) VerifyArtifact(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return errors.Join(domain.ErrArtifactMissing, zerr.With(zerr.New("no file at "+path), "path", path))
	case err != nil:
		return errors.Join(domain.ErrArtifactMissing, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path))
	case info.IsDir():
		return errors.Join(domain.ErrArtifactMissing, zerr.With(zerr.New(path+" is a directory"), "path", path))
	}
	return nil
}

// EnsureDir creates dir and its parents when missing.
func (p *Publisher) EnsureDir(ctx context.Context, dir string, elevation domain.Elevation) error {
	info, err := os.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return publishError(zerr.New(dir+" exists and is not a directory"), dir)
	}

	if p.elevate(dir, elevation) {
		return p.runElevated(ctx, dir, "mkdir", "-p", dir)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return publishError(zerr.Wrap(err, "cannot create "+dir), dir)
	}
	return nil
}

// Link points link at artifact, replacing any existing entry. The link is
// created under a temporary name and renamed over the final one, so the old
// link stays valid until the new one is in place.
func (p *Publisher) Link(ctx context.Context, artifact, link string, elevation domain.Elevation) error {
	tmp := filepath.Join(filepath.Dir(link), "."+filepath.Base(link)+".chargeup-tmp")

	if p.elevate(filepath.Dir(link), elevation) {
		if err := p.runElevated(ctx, link, "ln", "-sfn", artifact, tmp); err != nil {
			return err
		}
		mv := append(append([]string{"mv"}, p.mvFlags...), tmp, link)
		if err := p.runElevated(ctx, link, mv...); err != nil {
			return err
		}
		return verifyLink(artifact, link)
	}

	_ = os.Remove(tmp)
	if err := os.Symlink(artifact, tmp); err != nil {
		return publishError(zerr.Wrap(err, "cannot create link "+link), link)
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return publishError(zerr.Wrap(err, "cannot create link "+link), link)
	}
	return nil
}

// elevate decides whether an operation on path goes through the elevation program.
func (p *Publisher) elevate(path string, elevation domain.Elevation) bool {
	switch elevation {
	case domain.ElevateAlways:
		return true
	case domain.ElevateNever:
		return false
	default:
		return !p.writable(path)
	}
}

func (p *Publisher) runElevated(ctx context.Context, path string, argv ...string) error {
	spec := domain.CommandSpec{Argv: argv, Capture: true, Elevate: true}

	result, err := p.runner.Run(ctx, spec, nil, nil)
	if err != nil {
		return publishError(zerr.Wrap(err, "cannot run "+spec.String()), path)
	}
	if !result.Success {
		msg := fmt.Sprintf("%s failed for %s", spec.String(), path)
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			msg += ": " + stderr
		}
		cause := zerr.With(zerr.New(msg), "exit_code", result.ExitCode)
		return publishError(zerr.With(cause, "stderr", result.Stderr), path)
	}
	return nil
}

// verifyLink checks that link now points at artifact. mv without a
// no-dereference flag moves the new link into the directory an old link
// points at and still exits 0.
func verifyLink(artifact, link string) error {
	target, err := os.Readlink(link)
	if err != nil {
		return publishError(zerr.Wrap(err, "cannot read link "+link), link)
	}
	if target != artifact {
		cause := zerr.New(fmt.Sprintf("%s points at %s, not %s", link, target, artifact))
		return publishError(zerr.With(cause, "target", target), link)
	}
	return nil
}

func publishError(cause error, path string) error {
	return errors.Join(domain.ErrPublishFailure, zerr.With(cause, "path", path))
}
