package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestServersCommand(t *testing.T) {
	out, err := runCLI(t, &fakeHost{}, nil, "servers")
	if err != nil {
		t.Fatalf("servers: %v", err)
	}
	for _, want := range []string{"ID", "fra-1", "Frankfurt", "fra.example.com:51820"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cHJpdmF0ZQ==") {
		t.Error("output leaks the private key")
	}
}

func TestServersCommand_JSON(t *testing.T) {
	out, err := runCLI(t, &fakeHost{}, nil, "servers", "--json")
	if err != nil {
		t.Fatalf("servers: %v", err)
	}
	var entries []serverEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].ID != "fra-1" || entries[0].Location != "DE" {
		t.Errorf("entries = %+v", entries)
	}
}
