package platform

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DefaultInterfacePrefix is the prefix of interface names picked by ApplyConfig.
const DefaultInterfacePrefix = "wg"

// DefaultStatusTimeout bounds read-only subprocesses (wg show).
const DefaultStatusTimeout = 5 * time.Second

// DefaultCommandTimeout bounds mutating subprocesses (wg-quick up/down).
const DefaultCommandTimeout = 30 * time.Second

// DefaultMaxOutputBytes caps captured stdout and stderr per subprocess (64 KiB).
const DefaultMaxOutputBytes = 64 << 10

// Linux limits interface names to 15 bytes; leave room for the slot number.
var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,11}$`)

// Config holds the platform strategy configuration.
// Empty directory lists are replaced by the per-OS conventions of the strategy.
type Config struct {
	// WGQuickPath overrides discovery of the bring-up/bring-down tool.
	WGQuickPath string `yaml:"wg_quick_path"`

	// WGPath overrides discovery of the show tool.
	WGPath string `yaml:"wg_path"`

	// TempDir is where short-lived config artifacts are created.
	// Default: os.TempDir().
	TempDir string `yaml:"temp_dir"`

	// InterfacePrefix names interfaces <prefix>0, <prefix>1, ...
	// Default: "wg"
	InterfacePrefix string `yaml:"interface_prefix"`

	// SearchDirs are checked in order when the binaries are not on PATH.
	SearchDirs []string `yaml:"search_dirs"`

	// ConfigDirs are checked in order for <iface>.conf on bring-down.
	ConfigDirs []string `yaml:"config_dirs"`

	// StatusTimeout is the hard limit for wg show. Default: 5s.
	StatusTimeout time.Duration `yaml:"status_timeout"`

	// CommandTimeout is the hard limit for wg-quick up/down. Default: 30s.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// MaxOutputBytes caps captured output per stream. Default: 64 KiB.
	MaxOutputBytes int64 `yaml:"max_output_bytes"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.InterfacePrefix == "" {
		c.InterfacePrefix = DefaultInterfacePrefix
	}
	if c.StatusTimeout == 0 {
		c.StatusTimeout = DefaultStatusTimeout
	}
	if c.CommandTimeout == 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.MaxOutputBytes == 0 {
		c.MaxOutputBytes = DefaultMaxOutputBytes
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if !prefixPattern.MatchString(c.InterfacePrefix) {
		return fmt.Errorf("platform: config: invalid interface_prefix %q", c.InterfacePrefix)
	}
	if c.StatusTimeout < 100*time.Millisecond {
		return errors.New("platform: config: status_timeout must be at least 100ms")
	}
	if c.CommandTimeout < time.Second {
		return errors.New("platform: config: command_timeout must be at least 1s")
	}
	if c.MaxOutputBytes < 1024 {
		return errors.New("platform: config: max_output_bytes must be at least 1024")
	}
	return nil
}
