//go:build !unix

package fs

// writable always reports true; permission errors surface from the
// unprivileged operation itself.
func writable(string) bool {
	return true
}
