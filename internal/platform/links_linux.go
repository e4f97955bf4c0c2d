//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/vishvananda/netlink"
)

// netlinkLinks implements linkManager with rtnetlink.
type netlinkLinks struct {
	logger *slog.Logger
}

func newLinkManager(logger *slog.Logger) linkManager {
	return &netlinkLinks{logger: logger}
}

// Exists reports whether a link named name is present.
func (l *netlinkLinks) Exists(name string) (bool, error) {
	if _, err := netlink.LinkByName(name); err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return false, nil
		}
		return false, fmt.Errorf("platform: link exists: %w", err)
	}
	return true, nil
}

// Delete removes the named link.
// It is idempotent: deleting a non-existent link returns nil.
func (l *netlinkLinks) Delete(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("platform: delete link: %w", err)
	}

	if err := netlink.LinkDel(link); err != nil {
		return fmt.Errorf("platform: delete link: %w", err)
	}

	l.logger.Info("link deleted",
		"interface", name,
		"type", link.Type(),
	)
	return nil
}
