package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// darwinRunDir is where wg-quick on macOS records the utun device backing
// each interface, as <iface>.name.
const darwinRunDir = "/var/run/wireguard"

// MacStrategy drives wg-quick on macOS. The kernel device is a utunN whose
// mapping to the wg-quick interface name is read from darwinRunDir.
type MacStrategy struct {
	*engine
	runDir string
}

// NewMacStrategy returns the macOS strategy.
func NewMacStrategy(cfg Config, logger *slog.Logger) *MacStrategy {
	e := newEngine("darwin", cfg, logger,
		[]string{"/usr/local/bin", "/opt/homebrew/bin", "/usr/bin"},
		nonEmpty(
			"/etc/wireguard",
			homeConfigDir(),
			"/opt/homebrew/etc/wireguard",
			"/usr/local/etc/wireguard",
		),
	)
	s := &MacStrategy{engine: e, runDir: darwinRunDir}
	e.toDevice = s.deviceFor
	e.fromDevice = s.interfaceFor
	e.links = &macSockets{s: s}
	return s
}

// deviceFor returns the utun device recorded for iface, or iface itself.
func (s *MacStrategy) deviceFor(iface string) string {
	data, err := os.ReadFile(filepath.Join(s.runDir, iface+".name"))
	if err != nil {
		return iface
	}
	if dev := strings.TrimSpace(string(data)); dev != "" {
		return dev
	}
	return iface
}

// interfaceFor maps a utun device back to the interface whose name file
// points at it, or returns the device name unchanged.
func (s *MacStrategy) interfaceFor(device string) string {
	matches, err := filepath.Glob(filepath.Join(s.runDir, "*.name"))
	if err != nil {
		return device
	}
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(data)) == device {
			return strings.TrimSuffix(filepath.Base(m), ".name")
		}
	}
	return device
}

// macSockets implements linkManager for wireguard-go. Removing the control
// socket <runDir>/<utun>.sock makes the userspace process destroy its utun
// device, which is how wg-quick itself brings a tunnel down on macOS.
type macSockets struct {
	s *MacStrategy
}

func (m *macSockets) socketPath(iface string) string {
	return filepath.Join(m.s.runDir, m.s.deviceFor(iface)+".sock")
}

// Exists reports whether the tunnel's control socket is present.
func (m *macSockets) Exists(iface string) (bool, error) {
	if _, err := os.Stat(m.socketPath(iface)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("platform: socket exists: %w", err)
	}
	return true, nil
}

// Delete removes the control socket and then the name mapping.
// Missing files are not an error.
func (m *macSockets) Delete(iface string) error {
	if err := os.Remove(m.socketPath(iface)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("platform: remove socket: %w", err)
	}
	if err := os.Remove(filepath.Join(m.s.runDir, iface+".name")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("platform: remove name file: %w", err)
	}
	return nil
}
