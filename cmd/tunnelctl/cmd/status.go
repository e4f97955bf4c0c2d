package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/connection"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

var (
	statusJSON   bool
	statusDetail bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tunnel status",
	Long: "Query the OS for the active WireGuard tunnel and print whether it is\n" +
		"connected. --detail adds interface and peer state.",
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print JSON")
	statusCmd.Flags().BoolVar(&statusDetail, "detail", false, "include interface and peer state")
	rootCmd.AddCommand(statusCmd)
}

// statusReport is the JSON form of the status command.
type statusReport struct {
	wireguard.ConnectionStatus
	Platform string                  `json:"platform"`
	Detail   *wireguard.TunnelDetail `json:"detail,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv("status")
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	o := connection.New(e.platform, e.cfg.Connection, e.logger)
	defer e.closeOrchestrator(o)

	st, err := o.Status(ctx)
	if err != nil && !errors.Is(err, wireguard.ErrPlatformNotSupported) {
		return fmt.Errorf("tunnelctl status: %w", err)
	}

	report := statusReport{ConnectionStatus: st, Platform: e.platform.Name()}
	if statusDetail && st.Connected {
		detail, err := e.platform.Inspect(ctx, st.ActiveInterface)
		if err != nil {
			return fmt.Errorf("tunnelctl status: %w", err)
		}
		report.Detail = detail
	}

	w := cmd.OutOrStdout()
	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printStatus(w, report)
	return nil
}

func printStatus(w io.Writer, r statusReport) {
	if !r.Connected {
		fmt.Fprintln(w, "Status:    disconnected")
		return
	}
	fmt.Fprintln(w, "Status:    connected")
	fmt.Fprintf(w, "Config:    %s\n", r.ActiveConfigName)
	fmt.Fprintf(w, "Interface: %s\n", r.ActiveInterface)

	d := r.Detail
	if d == nil {
		return
	}
	if d.PublicKey != "" {
		fmt.Fprintf(w, "Public key: %s\n", d.PublicKey)
	}
	if d.ListenPort != 0 {
		fmt.Fprintf(w, "Listen port: %d\n", d.ListenPort)
	}
	for _, p := range d.Peers {
		fmt.Fprintf(w, "\nPeer: %s\n", p.PublicKey)
		if p.Endpoint != "" {
			fmt.Fprintf(w, "  Endpoint:         %s\n", p.Endpoint)
		}
		fmt.Fprintf(w, "  Allowed IPs:      %s\n", strings.Join(p.AllowedIPs, ", "))
		if p.LatestHandshake.IsZero() {
			fmt.Fprintln(w, "  Latest handshake: never")
		} else {
			fmt.Fprintf(w, "  Latest handshake: %s ago\n", time.Since(p.LatestHandshake).Truncate(time.Second))
		}
		fmt.Fprintf(w, "  Transfer:         %d B received, %d B sent\n", p.RxBytes, p.TxBytes)
		if p.PersistentKeepalive > 0 {
			fmt.Fprintf(w, "  Keepalive:        every %s\n", p.PersistentKeepalive)
		}
	}
}
