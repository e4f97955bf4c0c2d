//go:build !unix

package platform

// effectiveRoot is always false where uids do not exist.
func effectiveRoot() bool {
	return false
}
