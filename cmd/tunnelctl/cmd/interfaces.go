package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List active WireGuard interfaces",
	Long: "List the WireGuard interfaces the OS reports as active, one per line,\n" +
		"followed by the location of the wg-quick tool in use.",
	Args: cobra.NoArgs,
	RunE: runInterfaces,
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}

func runInterfaces(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv("interfaces")
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	ifaces, err := e.platform.ListInterfaces(ctx)
	if err != nil {
		return fmt.Errorf("tunnelctl interfaces: %w", err)
	}

	w := cmd.OutOrStdout()
	for name := range ifaces {
		fmt.Fprintln(w, name)
	}
	if path, ok := e.platform.BinaryPath(); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "wg-quick: %s (%s)\n", path, e.platform.Name())
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "wg-quick: not installed (%s)\n", e.platform.Name())
	}
	return nil
}
