//go:build !linux

package platform

import "log/slog"

// newLinkManager returns nil: direct link removal is Linux only.
func newLinkManager(_ *slog.Logger) linkManager {
	return nil
}
