// Package platform hides the OS specific tunnel tooling behind one contract.
//
// A strategy locates wg-quick and wg, renders a TunnelConfig into a scoped
// temporary file, runs the tools as subprocesses with discrete arguments and
// translates every failure into the wireguard error taxonomy. Exactly one
// strategy is created per process by New.
package platform

import (
	"context"
	"iter"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// Platform is the capability every OS strategy provides.
//
// Read-only probes (IsInstalled, BinaryPath, ListInterfaces) must succeed on
// stub strategies with empty results; mutations and status queries on stubs
// fail with wireguard.ErrPlatformNotSupported.
type Platform interface {
	// Name identifies the strategy, e.g. "linux".
	Name() string

	// ApplyConfig brings up a tunnel for cfg and returns the interface name.
	// The temporary config file is removed on every return path.
	ApplyConfig(ctx context.Context, cfg wireguard.TunnelConfig) (string, error)

	// Disconnect brings the named interface down. A missing interface yields
	// wireguard.ErrInterfaceNotFound.
	Disconnect(ctx context.Context, iface string) error

	// Status reports whether iface is up. With an empty iface the first
	// interface from ListInterfaces is inspected; none means disconnected.
	// Only one tunnel is considered.
	Status(ctx context.Context, iface string) (wireguard.ConnectionStatus, error)

	// ListInterfaces enumerates active tunnel interfaces in tool order.
	// The returned sequence can be ranged over more than once.
	ListInterfaces(ctx context.Context) (iter.Seq[string], error)

	// IsInstalled reports whether the bring-up tool can be found. It never fails.
	IsInstalled() bool

	// BinaryPath returns the resolved bring-up tool path.
	BinaryPath() (string, bool)

	// Inspect reads interface and peer state for iface.
	Inspect(ctx context.Context, iface string) (*wireguard.TunnelDetail, error)
}

// first returns the first element of seq.
func first(seq iter.Seq[string]) (string, bool) {
	for v := range seq {
		return v, true
	}
	return "", false
}

// emptySeq yields nothing.
func emptySeq(func(string) bool) {}
