// Package wireguard holds the tunnel configuration model, its wg-quick text
// rendering and the error taxonomy shared by every platform strategy.
package wireguard

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// MaxPersistentKeepalive is the largest keepalive interval wg-quick accepts.
const MaxPersistentKeepalive = 65535

// TunnelConfig describes a single client tunnel: the local interface and the
// one peer it talks to. Keys are base64 strings and are not decoded here.
// A TunnelConfig is treated as immutable once constructed.
type TunnelConfig struct {
	// Name is a display label. It is not used as an interface name.
	Name string `yaml:"name" json:"name"`

	PrivateKey string `yaml:"private_key" json:"private_key"`
	PublicKey  string `yaml:"public_key" json:"public_key"`

	// Endpoint is the peer address in host:port form.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// AllowedIPs is the comma separated CIDR list routed through the peer.
	AllowedIPs string `yaml:"allowed_ips" json:"allowed_ips"`

	// Address is this node's tunnel CIDR.
	Address string `yaml:"address" json:"address"`

	// DNS is an optional resolver list. Empty means absent.
	DNS string `yaml:"dns,omitempty" json:"dns,omitempty"`

	// PersistentKeepalive is an optional interval in seconds. Nil means absent.
	PersistentKeepalive *int `yaml:"persistent_keepalive,omitempty" json:"persistent_keepalive,omitempty"`
}

// HasDNS reports whether the optional DNS field is present.
func (c TunnelConfig) HasDNS() bool {
	return strings.TrimSpace(c.DNS) != ""
}

// HasKeepalive reports whether the optional keepalive field is present.
func (c TunnelConfig) HasKeepalive() bool {
	return c.PersistentKeepalive != nil
}

type configField struct {
	name  string
	value string
}

// Validate checks that the config can be handed to wg-quick. It does not
// verify keys cryptographically. Any failure is a ConfigInvalid error.
func (c TunnelConfig) Validate() error {
	required := []configField{
		{"private_key", c.PrivateKey},
		{"public_key", c.PublicKey},
		{"endpoint", c.Endpoint},
		{"allowed_ips", c.AllowedIPs},
		{"address", c.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return ConfigInvalid(f.name + " must not be empty")
		}
	}

	// Every value lands on its own line in the rendered file. A line break
	// inside a field would let it smuggle extra directives such as PostUp.
	all := append(required, configField{"dns", c.DNS}, configField{"name", c.Name})
	for _, f := range all {
		if strings.IndexFunc(f.value, unicode.IsControl) >= 0 {
			return ConfigInvalid(f.name + " contains control characters")
		}
	}

	if c.PersistentKeepalive != nil {
		if k := *c.PersistentKeepalive; k < 0 || k > MaxPersistentKeepalive {
			return ConfigInvalid(fmt.Sprintf("persistent_keepalive %d out of range 0-%d", k, MaxPersistentKeepalive))
		}
	}
	return nil
}

// Keepalive returns a pointer suitable for TunnelConfig.PersistentKeepalive.
func Keepalive(seconds int) *int {
	return &seconds
}

// LoadTunnelConfig reads a YAML (or JSON) tunnel config file.
func LoadTunnelConfig(path string) (TunnelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TunnelConfig{}, fmt.Errorf("wireguard: load config: read %s: %w", path, err)
	}
	var cfg TunnelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TunnelConfig{}, ConfigInvalid(fmt.Sprintf("parse %s: %v", path, err))
	}
	return cfg, nil
}
