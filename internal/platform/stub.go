package platform

import (
	"context"
	"iter"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// stub answers read-only probes with empty results and rejects everything
// else with wireguard.ErrPlatformNotSupported.
type stub struct {
	name string
}

func (s stub) Name() string { return s.name }

func (stub) IsInstalled() bool { return false }

func (stub) BinaryPath() (string, bool) { return "", false }

func (stub) ListInterfaces(context.Context) (iter.Seq[string], error) {
	return emptySeq, nil
}

func (stub) ApplyConfig(context.Context, wireguard.TunnelConfig) (string, error) {
	return "", wireguard.ErrPlatformNotSupported
}

func (stub) Disconnect(context.Context, string) error {
	return wireguard.ErrPlatformNotSupported
}

func (stub) Status(context.Context, string) (wireguard.ConnectionStatus, error) {
	return wireguard.Disconnected(), wireguard.ErrPlatformNotSupported
}

func (stub) Inspect(context.Context, string) (*wireguard.TunnelDetail, error) {
	return nil, wireguard.ErrPlatformNotSupported
}
