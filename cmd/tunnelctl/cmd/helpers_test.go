package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/plexsphere/tunnelctl/internal/platform"
)

const tunnelYAML = `
name: office
private_key: cHJpdmF0ZQ==
public_key: cHVibGlj
endpoint: vpn.example.com:51820
allowed_ips: 0.0.0.0/0
address: 10.0.0.2/32
dns: 1.1.1.1
persistent_keepalive: 25
`

const catalogYAML = `
servers:
  - id: fra-1
    name: Frankfurt
    location: DE
    config:
      private_key: cHJpdmF0ZQ==
      public_key: cHVibGlj
      endpoint: fra.example.com:51820
      allowed_ips: 0.0.0.0/0
      address: 10.8.0.2/32
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// testConfig writes a config file pointing the catalog and temp dir into
// a test directory.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "servers.yaml", catalogYAML)
	return writeFile(t, dir, "config.yaml", fmt.Sprintf(
		"log_level: error\nplatform:\n  temp_dir: %s\ncatalog:\n  path: %s\n", dir, catalogPath))
}

// runCLI executes rootCmd against p and returns everything written to
// stdout and stderr.
func runCLI(t *testing.T, p platform.Platform, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	origPlatform := newPlatform
	newPlatform = func(platform.Config, *slog.Logger) platform.Platform { return p }
	t.Cleanup(func() {
		newPlatform = origPlatform
		resetFlags()
		rootCmd.SetIn(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(append([]string{"--config", testConfig(t)}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag variables, which persist across Execute calls.
func resetFlags() {
	cfgFile, logLevel = "", ""
	upServer = ""
	statusJSON, statusDetail = false, false
	renderOutput = ""
	keygenPubkey = false
	serversJSON = false
}
