//go:build !unix

package platform

import "errors"

func kernelRelease() (string, error) {
	return "", errors.New("kernel release is not available on this platform")
}
