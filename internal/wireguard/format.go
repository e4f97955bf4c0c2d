package wireguard

import (
	"strconv"
	"strings"
)

// Serialize renders cfg in the wg-quick configuration format.
//
// Section and line order is fixed: downstream tooling locates fields by
// section header, so new optional keys may only be appended to a section.
// Optional keys are omitted entirely when absent. Serialize does not
// validate; call Validate before handing the output to wg-quick.
func Serialize(cfg TunnelConfig) string {
	var b strings.Builder

	b.WriteString("[Interface]\n")
	writeKey(&b, "PrivateKey", cfg.PrivateKey)
	writeKey(&b, "Address", cfg.Address)
	if cfg.HasDNS() {
		writeKey(&b, "DNS", cfg.DNS)
	}

	b.WriteString("\n[Peer]\n")
	writeKey(&b, "PublicKey", cfg.PublicKey)
	writeKey(&b, "Endpoint", cfg.Endpoint)
	writeKey(&b, "AllowedIPs", cfg.AllowedIPs)
	if cfg.HasKeepalive() {
		writeKey(&b, "PersistentKeepalive", strconv.Itoa(*cfg.PersistentKeepalive))
	}

	return b.String()
}

func writeKey(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(" = ")
	b.WriteString(value)
	b.WriteByte('\n')
}
