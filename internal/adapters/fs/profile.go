package fs

import (
	"bufio"
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProfileEditor = (*ProfileEditor)(nil)

const profilePerm = 0o644

// ProfileEditor implements ports.ProfileEditor for plain-text shell profiles.
type ProfileEditor struct {
	homeDir func() (string, error)
}

// NewProfileEditor creates a new ProfileEditor.
func NewProfileEditor() *ProfileEditor {
	return &ProfileEditor{homeDir: os.UserHomeDir}
}

// EnsureLine appends line to the profile at path unless an identical line is
// already present. The file is created when missing.
func (e *ProfileEditor) EnsureLine(path, line string) error {
	path, err := e.expand(path)
	if err != nil {
		return profileError(err, path)
	}

	want := strings.TrimSpace(line)

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the manifest
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return profileError(zerr.Wrap(err, "failed to read profile"), path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == want {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return profileError(zerr.Wrap(err, "failed to create profile directory"), path)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, profilePerm) //nolint:gosec // path comes from the manifest
	if err != nil {
		return profileError(zerr.Wrap(err, "failed to open profile"), path)
	}

	var b strings.Builder
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(want)
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return profileError(zerr.Wrap(err, "failed to write profile"), path)
	}
	if err := f.Close(); err != nil {
		return profileError(zerr.Wrap(err, "failed to close profile"), path)
	}
	return nil
}

// expand resolves a leading ~ to the user's home directory.
func (e *ProfileEditor) expand(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := e.homeDir()
	if err != nil {
		return path, zerr.Wrap(err, "cannot resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func profileError(cause error, path string) error {
	return errors.Join(domain.ErrProfileUpdateFailed, zerr.With(cause, "path", path))
}
