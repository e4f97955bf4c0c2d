package platform

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// parseDump parses the tab separated output of `wg show <iface> dump`.
// The first line describes the interface:
//
//	private-key public-key listen-port fwmark
//
// and every following line a peer:
//
//	public-key preshared-key endpoint allowed-ips latest-handshake rx tx keepalive
func parseDump(iface, out string) (*wireguard.TunnelDetail, error) {
	detail := &wireguard.TunnelDetail{Interface: iface, Peers: []wireguard.PeerDetail{}}

	sc := bufio.NewScanner(strings.NewReader(out))
	lineNo := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lineNo++
		fields := strings.Split(line, "\t")

		if lineNo == 1 {
			if len(fields) < 3 {
				return nil, fmt.Errorf("platform: parse dump: interface line has %d fields", len(fields))
			}
			detail.PublicKey = noneToEmpty(fields[1])
			if port, err := strconv.Atoi(fields[2]); err == nil {
				detail.ListenPort = port
			}
			continue
		}

		if len(fields) < 8 {
			return nil, fmt.Errorf("platform: parse dump: peer line %d has %d fields", lineNo, len(fields))
		}
		peer := wireguard.PeerDetail{
			PublicKey:  fields[0],
			Endpoint:   noneToEmpty(fields[2]),
			AllowedIPs: splitAllowedIPs(fields[3]),
		}
		if ts, err := strconv.ParseInt(fields[4], 10, 64); err == nil && ts > 0 {
			peer.LatestHandshake = time.Unix(ts, 0)
		}
		peer.RxBytes, _ = strconv.ParseInt(fields[5], 10, 64)
		peer.TxBytes, _ = strconv.ParseInt(fields[6], 10, 64)
		if secs, err := strconv.Atoi(fields[7]); err == nil {
			peer.PersistentKeepalive = time.Duration(secs) * time.Second
		}
		detail.Peers = append(detail.Peers, peer)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("platform: parse dump: %w", err)
	}
	if lineNo == 0 {
		return nil, fmt.Errorf("platform: parse dump: empty output")
	}
	return detail, nil
}

func noneToEmpty(s string) string {
	if s == "(none)" {
		return ""
	}
	return s
}

func splitAllowedIPs(s string) []string {
	s = noneToEmpty(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
