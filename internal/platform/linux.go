package platform

import "log/slog"

// LinuxStrategy drives wg-quick on Linux. The interface takes the name of
// the config file stem, and netlink is used as a last resort on bring-down.
type LinuxStrategy struct {
	*engine
}

// NewLinuxStrategy returns the Linux strategy.
func NewLinuxStrategy(cfg Config, logger *slog.Logger) *LinuxStrategy {
	e := newEngine("linux", cfg, logger,
		[]string{"/usr/bin", "/usr/local/bin"},
		[]string{"/etc/wireguard"},
	)
	e.links = newLinkManager(e.logger)
	e.inspect = newDeviceInspector()
	return &LinuxStrategy{engine: e}
}
