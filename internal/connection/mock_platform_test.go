package connection

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// mockPlatform is a test double for platform.Platform. When gate is set,
// ApplyConfig and Disconnect block until it is closed, and started is
// signalled on entry.
type mockPlatform struct {
	mu sync.Mutex

	applyIface string
	applyErr   error
	downErr    error
	status     wireguard.ConnectionStatus
	statusErr  error

	gate    chan struct{}
	started chan struct{}

	applyCalls  []wireguard.TunnelConfig
	downCalls   []string
	statusCalls []string
}

func (m *mockPlatform) Name() string { return "mock" }

func (m *mockPlatform) wait() {
	m.mu.Lock()
	gate, started := m.gate, m.started
	m.mu.Unlock()
	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
}

func (m *mockPlatform) ApplyConfig(_ context.Context, cfg wireguard.TunnelConfig) (string, error) {
	m.mu.Lock()
	m.applyCalls = append(m.applyCalls, cfg)
	m.mu.Unlock()

	m.wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyIface, m.applyErr
}

func (m *mockPlatform) Disconnect(_ context.Context, iface string) error {
	m.mu.Lock()
	m.downCalls = append(m.downCalls, iface)
	m.mu.Unlock()

	m.wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.downErr
}

func (m *mockPlatform) Status(_ context.Context, iface string) (wireguard.ConnectionStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls = append(m.statusCalls, iface)
	return m.status, m.statusErr
}

func (m *mockPlatform) ListInterfaces(context.Context) (iter.Seq[string], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.Connected {
		return slices.Values([]string{m.status.ActiveInterface}), nil
	}
	return slices.Values([]string(nil)), nil
}

func (m *mockPlatform) IsInstalled() bool { return true }

func (m *mockPlatform) BinaryPath() (string, bool) { return "/usr/bin/wg-quick", true }

func (m *mockPlatform) Inspect(_ context.Context, iface string) (*wireguard.TunnelDetail, error) {
	return &wireguard.TunnelDetail{Interface: iface}, nil
}

func (m *mockPlatform) counts() (apply, down, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applyCalls), len(m.downCalls), len(m.statusCalls)
}

func (m *mockPlatform) lastStatusArg() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.statusCalls) == 0 {
		return ""
	}
	return m.statusCalls[len(m.statusCalls)-1]
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
