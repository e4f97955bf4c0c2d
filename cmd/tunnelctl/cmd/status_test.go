package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/plexsphere/tunnelctl/internal/platform"
)

func TestStatusCommand_Disconnected(t *testing.T) {
	out, err := runCLI(t, &fakeHost{}, nil, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "disconnected") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusCommand_Connected(t *testing.T) {
	out, err := runCLI(t, &fakeHost{active: []string{"wg2"}}, nil, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "connected") || !strings.Contains(out, "Interface: wg2") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusCommand_JSONDetail(t *testing.T) {
	out, err := runCLI(t, &fakeHost{active: []string{"wg0"}}, nil, "status", "--json", "--detail")
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	var got struct {
		Connected       bool   `json:"connected"`
		ActiveInterface string `json:"active_interface"`
		Platform        string `json:"platform"`
		Detail          struct {
			ListenPort int `json:"listen_port"`
			Peers      []struct {
				PublicKey string `json:"public_key"`
			} `json:"peers"`
		} `json:"detail"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if !got.Connected || got.ActiveInterface != "wg0" || got.Platform != "fake" {
		t.Errorf("status = %+v", got)
	}
	if got.Detail.ListenPort != 51820 || len(got.Detail.Peers) != 1 {
		t.Errorf("detail = %+v", got.Detail)
	}
}

func TestStatusCommand_DetailText(t *testing.T) {
	out, err := runCLI(t, &fakeHost{active: []string{"wg0"}}, nil, "status", "--detail")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"Peer: PEERPUB=", "203.0.113.1:51820", "Latest handshake: never"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCommand_UnsupportedPlatform(t *testing.T) {
	out, err := runCLI(t, platform.NewUnsupportedStrategy(), nil, "status", "--json")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, `"connected": false`) || !strings.Contains(out, `"platform": "unsupported"`) {
		t.Errorf("output = %q", out)
	}
}

func TestInterfacesCommand(t *testing.T) {
	out, err := runCLI(t, &fakeHost{active: []string{"wg0", "wg1"}}, nil, "interfaces")
	if err != nil {
		t.Fatalf("interfaces: %v", err)
	}
	if !strings.Contains(out, "wg0\nwg1\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "/usr/bin/wg-quick") {
		t.Errorf("output should name the tool, got %q", out)
	}
}

func TestInterfacesCommand_UnsupportedPlatform(t *testing.T) {
	out, err := runCLI(t, platform.NewUnsupportedStrategy(), nil, "interfaces")
	if err != nil {
		t.Fatalf("interfaces: %v", err)
	}
	if !strings.Contains(out, "not installed") {
		t.Errorf("output = %q", out)
	}
}
