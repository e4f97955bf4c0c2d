package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Bring the tunnel down",
	Long: "Bring the active WireGuard tunnel down. The tunnel reported by the OS\n" +
		"is adopted first, so a tunnel started by an earlier invocation or by hand\n" +
		"is taken down too. Succeeds without doing anything when no tunnel is up.",
	Args: cobra.NoArgs,
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv("down")
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	o, st, err := e.orchestrator(ctx)
	if err != nil {
		return fmt.Errorf("tunnelctl down: %w", err)
	}
	defer e.closeOrchestrator(o)

	w := cmd.OutOrStdout()
	if !st.Connected {
		fmt.Fprintln(w, "Not connected")
		return nil
	}
	if err := o.Disconnect(ctx); err != nil {
		return fmt.Errorf("tunnelctl down: %w", err)
	}
	fmt.Fprintf(w, "Disconnected %s\n", st.ActiveInterface)
	return nil
}
