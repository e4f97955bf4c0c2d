package connection

import (
	"errors"
	"time"
)

// DefaultApplyTimeout bounds how long Apply waits for a bring-up.
const DefaultApplyTimeout = 30 * time.Second

// DefaultDisconnectTimeout bounds how long Disconnect waits for a bring-down.
const DefaultDisconnectTimeout = 30 * time.Second

// DefaultStatusTimeout bounds how long Status and Reconcile wait for the OS.
const DefaultStatusTimeout = 5 * time.Second

// Config holds the orchestrator configuration. The timeouts bound how long a
// caller waits; an operation that outlives its caller still runs to
// completion and settles the state.
type Config struct {
	// ApplyTimeout is how long Apply waits. Default: 30s.
	ApplyTimeout time.Duration `yaml:"apply_timeout"`

	// DisconnectTimeout is how long Disconnect waits. Default: 30s.
	DisconnectTimeout time.Duration `yaml:"disconnect_timeout"`

	// StatusTimeout is how long Status and Reconcile wait. Default: 5s.
	StatusTimeout time.Duration `yaml:"status_timeout"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.ApplyTimeout == 0 {
		c.ApplyTimeout = DefaultApplyTimeout
	}
	if c.DisconnectTimeout == 0 {
		c.DisconnectTimeout = DefaultDisconnectTimeout
	}
	if c.StatusTimeout == 0 {
		c.StatusTimeout = DefaultStatusTimeout
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.ApplyTimeout < time.Second {
		return errors.New("connection: config: apply_timeout must be at least 1s")
	}
	if c.DisconnectTimeout < time.Second {
		return errors.New("connection: config: disconnect_timeout must be at least 1s")
	}
	if c.StatusTimeout < 100*time.Millisecond {
		return errors.New("connection: config: status_timeout must be at least 100ms")
	}
	return nil
}
