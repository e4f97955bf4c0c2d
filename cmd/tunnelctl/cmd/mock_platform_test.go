package cmd

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// fakeHost is a test double for platform.Platform that keeps a list of
// active interfaces in memory.
type fakeHost struct {
	mu       sync.Mutex
	active   []string
	applyErr error
	applied  []wireguard.TunnelConfig
}

func (f *fakeHost) Name() string { return "fake" }

func (f *fakeHost) ApplyConfig(_ context.Context, cfg wireguard.TunnelConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, cfg)
	if f.applyErr != nil {
		return "", f.applyErr
	}
	f.active = append(f.active, "wg0")
	return "wg0", nil
}

func (f *fakeHost) Disconnect(_ context.Context, iface string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.Contains(f.active, iface) {
		return wireguard.InterfaceNotFound(iface)
	}
	f.active = slices.DeleteFunc(f.active, func(s string) bool { return s == iface })
	return nil
}

func (f *fakeHost) Status(_ context.Context, iface string) (wireguard.ConnectionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iface == "" {
		if len(f.active) == 0 {
			return wireguard.Disconnected(), nil
		}
		iface = f.active[0]
	}
	if !slices.Contains(f.active, iface) {
		return wireguard.Disconnected(), nil
	}
	return wireguard.ConnectedVia(iface, ""), nil
}

func (f *fakeHost) ListInterfaces(context.Context) (iter.Seq[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Values(slices.Clone(f.active)), nil
}

func (f *fakeHost) IsInstalled() bool { return true }

func (f *fakeHost) BinaryPath() (string, bool) { return "/usr/bin/wg-quick", true }

func (f *fakeHost) Inspect(_ context.Context, iface string) (*wireguard.TunnelDetail, error) {
	return &wireguard.TunnelDetail{
		Interface:  iface,
		PublicKey:  "SERVERPUB=",
		ListenPort: 51820,
		Peers: []wireguard.PeerDetail{{
			PublicKey:  "PEERPUB=",
			Endpoint:   "203.0.113.1:51820",
			AllowedIPs: []string{"0.0.0.0/0"},
			RxBytes:    10,
			TxBytes:    20,
		}},
	}, nil
}

func (f *fakeHost) activeInterfaces() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.active)
}
