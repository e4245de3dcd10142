//go:build unix

package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// writable reports whether the current user may write to path, or to its
// nearest existing ancestor when path does not exist yet.
func writable(path string) bool {
	for {
		if _, err := os.Lstat(path); err == nil {
			return unix.Access(path, unix.W_OK) == nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return false
		}
		path = parent
	}
}
