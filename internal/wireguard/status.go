package wireguard

import "time"

// ConnectionStatus is a point-in-time view of the tunnel as reported by the OS.
// When Connected is false both optional fields are empty. When Connected is
// true ActiveInterface is always set; ActiveConfigName is best effort.
type ConnectionStatus struct {
	Connected        bool   `json:"connected"`
	ActiveConfigName string `json:"active_config_name,omitempty"`
	ActiveInterface  string `json:"active_interface,omitempty"`
}

// Disconnected returns the status of a host with no active tunnel.
func Disconnected() ConnectionStatus {
	return ConnectionStatus{}
}

// ConnectedVia returns a connected status for the given interface.
// An empty configName falls back to the interface name.
func ConnectedVia(iface, configName string) ConnectionStatus {
	if configName == "" {
		configName = iface
	}
	return ConnectionStatus{
		Connected:        true,
		ActiveConfigName: configName,
		ActiveInterface:  iface,
	}
}

// TunnelDetail is the interface and peer state read from the device.
type TunnelDetail struct {
	Interface  string       `json:"interface"`
	PublicKey  string       `json:"public_key,omitempty"`
	ListenPort int          `json:"listen_port,omitempty"`
	Peers      []PeerDetail `json:"peers"`
}

// PeerDetail holds per-peer counters. A zero LatestHandshake means the
// handshake has not completed yet.
type PeerDetail struct {
	PublicKey           string        `json:"public_key"`
	Endpoint            string        `json:"endpoint,omitempty"`
	AllowedIPs          []string      `json:"allowed_ips"`
	LatestHandshake     time.Time     `json:"latest_handshake"`
	RxBytes             int64         `json:"rx_bytes"`
	TxBytes             int64         `json:"tx_bytes"`
	PersistentKeepalive time.Duration `json:"persistent_keepalive"`
}
