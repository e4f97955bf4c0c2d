package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// Compile-time interface checks.
var (
	_ Platform = (*MacStrategy)(nil)
	_ Platform = (*LinuxStrategy)(nil)
	_ Platform = (*WindowsStrategy)(nil)
	_ Platform = (*UnsupportedStrategy)(nil)
)

// New returns the strategy for goos. An unknown goos yields
// wireguard.ErrPlatformNotSupported; callers that only need read-only probes
// can fall back to NewUnsupportedStrategy.
func New(goos string, cfg Config, logger *slog.Logger) (Platform, error) {
	switch goos {
	case "darwin":
		return NewMacStrategy(cfg, logger), nil
	case "linux":
		return NewLinuxStrategy(cfg, logger), nil
	case "windows":
		return NewWindowsStrategy(), nil
	default:
		return nil, fmt.Errorf("platform: %s: %w", goos, wireguard.ErrPlatformNotSupported)
	}
}

// Current returns the strategy for the running OS.
func Current(cfg Config, logger *slog.Logger) (Platform, error) {
	return New(runtime.GOOS, cfg, logger)
}
