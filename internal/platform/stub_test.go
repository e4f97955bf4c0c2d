package platform

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

func TestStubStrategies(t *testing.T) {
	ctx := context.Background()
	for _, p := range []Platform{NewWindowsStrategy(), NewUnsupportedStrategy()} {
		t.Run(p.Name(), func(t *testing.T) {
			if p.IsInstalled() {
				t.Error("IsInstalled = true, want false")
			}
			if path, ok := p.BinaryPath(); ok || path != "" {
				t.Errorf("BinaryPath = %q, %v", path, ok)
			}

			seq, err := p.ListInterfaces(ctx)
			if err != nil {
				t.Fatalf("ListInterfaces: %v", err)
			}
			if got := slices.Collect(seq); len(got) != 0 {
				t.Errorf("ListInterfaces = %v, want empty", got)
			}

			if _, err := p.ApplyConfig(ctx, testTunnel()); !errors.Is(err, wireguard.ErrPlatformNotSupported) {
				t.Errorf("ApplyConfig err = %v", err)
			}
			if err := p.Disconnect(ctx, "wg0"); !errors.Is(err, wireguard.ErrPlatformNotSupported) {
				t.Errorf("Disconnect err = %v", err)
			}
			st, err := p.Status(ctx, "")
			if !errors.Is(err, wireguard.ErrPlatformNotSupported) {
				t.Errorf("Status err = %v", err)
			}
			if st.Connected {
				t.Errorf("Status = %+v", st)
			}
			if _, err := p.Inspect(ctx, "wg0"); !errors.Is(err, wireguard.ErrPlatformNotSupported) {
				t.Errorf("Inspect err = %v", err)
			}
		})
	}
}
