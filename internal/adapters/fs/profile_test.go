package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chargeup/internal/adapters/fs"
	"go.trai.ch/chargeup/internal/core/domain"
)

const pathExport = `export PATH="/usr/local/opt/llvm@17/bin:$PATH"`

func TestProfileEditor_EnsureLine(t *testing.T) {
	t.Run("creates the profile", func(t *testing.T) {
		home := t.TempDir()
		e := fs.NewProfileEditorWithHome(home)

		require.NoError(t, e.EnsureLine("~/.bash_profile", pathExport))

		data, err := os.ReadFile(filepath.Join(home, ".bash_profile"))
		require.NoError(t, err)
		assert.Equal(t, pathExport+"\n", string(data))
	})

	t.Run("appends once", func(t *testing.T) {
		home := t.TempDir()
		profile := filepath.Join(home, ".bash_profile")
		require.NoError(t, os.WriteFile(profile, []byte("alias ll='ls -l'"), 0o600))

		e := fs.NewProfileEditorWithHome(home)
		require.NoError(t, e.EnsureLine(profile, pathExport))
		require.NoError(t, e.EnsureLine(profile, "  "+pathExport+"  "))

		data, err := os.ReadFile(profile)
		require.NoError(t, err)
		assert.Equal(t, "alias ll='ls -l'\n"+pathExport+"\n", string(data))
	})

	t.Run("unwritable location", func(t *testing.T) {
		home := t.TempDir()
		blocker := filepath.Join(home, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))

		e := fs.NewProfileEditorWithHome(home)
		err := e.EnsureLine(filepath.Join(blocker, ".zshrc"), pathExport)
		require.ErrorIs(t, err, domain.ErrProfileUpdateFailed)
	})
}
