// Package catalog lists the tunnel configurations a user can pick from.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Server is one catalog entry.
type Server struct {
	ID       string                 `yaml:"id" json:"id"`
	Name     string                 `yaml:"name" json:"name"`
	Location string                 `yaml:"location,omitempty" json:"location,omitempty"`
	Config   wireguard.TunnelConfig `yaml:"config" json:"-"`
}

// Source provides tunnel configurations by id.
type Source interface {
	// List returns every server in catalog order.
	List() []Server
	// Get returns the configuration for id. An unknown id yields (nil, false).
	Get(id string) (*wireguard.TunnelConfig, bool)
}

type document struct {
	Servers []Server `yaml:"servers"`
}

// FileSource is a Source backed by a YAML file read once at Open.
type FileSource struct {
	servers []Server
	byID    map[string]int
}

// Open loads the catalog at cfg.Path. Every entry must carry a unique id and
// a valid tunnel configuration.
func Open(cfg Config, logger *slog.Logger) (*FileSource, error) {
	cfg.ApplyDefaults()
	logger = logger.With("component", "catalog")

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", cfg.Path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", cfg.Path, err)
	}

	src, err := newFileSource(doc.Servers)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", cfg.Path, err)
	}
	logger.Debug("catalog loaded", "path", cfg.Path, "servers", len(src.servers))
	return src, nil
}

func newFileSource(servers []Server) (*FileSource, error) {
	src := &FileSource{
		servers: make([]Server, 0, len(servers)),
		byID:    make(map[string]int, len(servers)),
	}
	for i, s := range servers {
		if !idPattern.MatchString(s.ID) {
			return nil, fmt.Errorf("server %d: invalid id %q", i, s.ID)
		}
		if _, dup := src.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate server id %q", s.ID)
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		if s.Config.Name == "" {
			s.Config.Name = s.Name
		}
		if err := s.Config.Validate(); err != nil {
			return nil, fmt.Errorf("server %q: %w", s.ID, err)
		}
		src.byID[s.ID] = len(src.servers)
		src.servers = append(src.servers, s)
	}
	return src, nil
}

// List returns a copy of the servers in file order.
func (f *FileSource) List() []Server {
	return slices.Clone(f.servers)
}

// Get returns a copy of the configuration for id.
func (f *FileSource) Get(id string) (*wireguard.TunnelConfig, bool) {
	i, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	cfg := f.servers[i].Config
	if cfg.PersistentKeepalive != nil {
		cfg.PersistentKeepalive = wireguard.Keepalive(*cfg.PersistentKeepalive)
	}
	return &cfg, true
}
