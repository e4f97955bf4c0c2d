package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// permissionMarkers are stderr fragments printed by wg, wg-quick and sudo
// when the caller lacks privileges.
var permissionMarkers = []string{
	"must be run as root",
	"operation not permitted",
	"permission denied",
	"a terminal is required",
	"no tty present",
	"a password is required",
}

// missingMarkers are stderr fragments meaning the interface does not exist.
// wg-quick's "`<path>.conf' does not exist" names a missing config file, not
// a missing interface, so it is not one of them.
var missingMarkers = []string{
	"is not a wireguard interface",
	"no such device",
	"cannot find device",
}

func containsAny(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// failureMessage picks the most useful text of a failed run: stderr verbatim,
// then stdout, then the exit status.
func failureMessage(op string, res Result) string {
	if msg := strings.TrimSpace(res.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(res.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s exited with status %d", op, res.ExitCode)
}

// classifyFailure maps a non-zero exit to the taxonomy. Without root, a
// wg-quick that tried to re-exec itself through sudo also counts as denied.
func classifyFailure(op string, res Result, privileged bool) error {
	msg := failureMessage(op, res)
	if containsAny(msg, permissionMarkers) {
		return wireguard.PermissionDenied(msg)
	}
	if !privileged && strings.Contains(strings.ToLower(msg), "sudo") {
		return wireguard.PermissionDenied(msg)
	}
	return wireguard.CommandFailed(msg)
}

// classifyDownFailure is classifyFailure for bring-down, where a missing
// interface has its own kind.
func classifyDownFailure(iface string, res Result, privileged bool) error {
	msg := failureMessage("wg-quick down", res)
	if containsAny(msg, missingMarkers) && !containsAny(msg, permissionMarkers) {
		return wireguard.InterfaceNotFound(iface)
	}
	return classifyFailure("wg-quick down", res, privileged)
}

// classifyRunError maps a Runner error (launch failure or timeout).
func classifyRunError(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return wireguard.PermissionDenied(err.Error())
	}
	return wireguard.CommandFailed(fmt.Sprintf("%s: %v", op, err))
}

// classifyFileError maps a failure to materialize the config artifact.
func classifyFileError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return wireguard.PermissionDenied(err.Error())
	}
	return wireguard.CommandFailed("write temporary config: " + err.Error())
}
