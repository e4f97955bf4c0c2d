package cmd

import (
	"path/filepath"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// loadTunnelFile reads a tunnel definition. A definition without a name is
// named after its file.
func loadTunnelFile(path string) (wireguard.TunnelConfig, error) {
	cfg, err := wireguard.LoadTunnelConfig(path)
	if err != nil {
		return wireguard.TunnelConfig{}, err
	}
	if cfg.Name == "" {
		base := filepath.Base(path)
		cfg.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return cfg, nil
}
