//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"

	"golang.zx2c4.com/wireguard/wgctrl"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

func newDeviceInspector() deviceInspector {
	return inspectWithWgctrl
}

// inspectWithWgctrl reads device state over generic netlink. A new client
// is opened per call so no socket outlives the query.
func inspectWithWgctrl(name string) (*wireguard.TunnelDetail, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("platform: inspect: open wgctrl: %w", err)
	}
	defer client.Close()

	dev, err := client.Device(name)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, wireguard.InterfaceNotFound(name)
		case errors.Is(err, os.ErrPermission):
			return nil, wireguard.PermissionDenied(err.Error())
		}
		return nil, fmt.Errorf("platform: inspect: %w", err)
	}

	detail := &wireguard.TunnelDetail{
		Interface:  name,
		PublicKey:  dev.PublicKey.String(),
		ListenPort: dev.ListenPort,
		Peers:      make([]wireguard.PeerDetail, 0, len(dev.Peers)),
	}
	for _, p := range dev.Peers {
		peer := wireguard.PeerDetail{
			PublicKey:           p.PublicKey.String(),
			AllowedIPs:          make([]string, 0, len(p.AllowedIPs)),
			LatestHandshake:     p.LastHandshakeTime,
			RxBytes:             p.ReceiveBytes,
			TxBytes:             p.TransmitBytes,
			PersistentKeepalive: p.PersistentKeepaliveInterval,
		}
		if p.Endpoint != nil {
			peer.Endpoint = p.Endpoint.String()
		}
		for _, ipNet := range p.AllowedIPs {
			peer.AllowedIPs = append(peer.AllowedIPs, ipNet.String())
		}
		detail.Peers = append(detail.Peers, peer)
	}
	return detail, nil
}
