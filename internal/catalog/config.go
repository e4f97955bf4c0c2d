package catalog

import "errors"

// DefaultPath is the default location of the server catalog.
const DefaultPath = "/etc/tunnelctl/servers.yaml"

// Config holds the catalog configuration.
type Config struct {
	// Path is the YAML file listing the available servers.
	// Default: /etc/tunnelctl/servers.yaml
	Path string `yaml:"path"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New("catalog: config: path is required")
	}
	return nil
}
