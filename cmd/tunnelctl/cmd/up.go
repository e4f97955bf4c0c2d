package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/catalog"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

var upServer string

var upCmd = &cobra.Command{
	Use:   "up [tunnel.yaml]",
	Short: "Bring the tunnel up",
	Long: "Bring a WireGuard tunnel up from a tunnel definition file (YAML or JSON)\n" +
		"or from a server in the catalog selected with --server. Only one tunnel\n" +
		"is managed at a time; bringing up a second one fails.",
	Args: cobra.MaximumNArgs(1),
	RunE: runUp,
}

func init() {
	upCmd.Flags().StringVar(&upServer, "server", "", "catalog server id to connect to")
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (upServer != "") {
		return errors.New("tunnelctl up: give either a tunnel file or --server")
	}

	e, err := loadEnv("up")
	if err != nil {
		return err
	}

	var tunnel wireguard.TunnelConfig
	if upServer != "" {
		src, err := catalog.Open(e.cfg.Catalog, e.logger)
		if err != nil {
			return fmt.Errorf("tunnelctl up: %w", err)
		}
		cfg, ok := src.Get(upServer)
		if !ok {
			return fmt.Errorf("tunnelctl up: unknown server %q", upServer)
		}
		tunnel = *cfg
	} else {
		tunnel, err = loadTunnelFile(args[0])
		if err != nil {
			return fmt.Errorf("tunnelctl up: %w", err)
		}
	}

	ctx, stop := signalContext()
	defer stop()

	o, _, err := e.orchestrator(ctx)
	if err != nil {
		return fmt.Errorf("tunnelctl up: %w", err)
	}
	defer e.closeOrchestrator(o)

	iface, err := o.Apply(ctx, tunnel)
	if err != nil {
		return fmt.Errorf("tunnelctl up: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Connected %s via %s\n", tunnel.Name, iface)
	return nil
}
