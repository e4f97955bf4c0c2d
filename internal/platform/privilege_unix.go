//go:build unix

package platform

import "golang.org/x/sys/unix"

// effectiveRoot reports whether the process runs with an effective uid of 0.
func effectiveRoot() bool {
	return unix.Geteuid() == 0
}
