package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/fsutil"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render tunnel.yaml",
	Short: "Print the wg-quick configuration for a tunnel definition",
	Long: "Validate a tunnel definition and print it in wg-quick format. With -o the\n" +
		"result is written atomically to a file readable only by its owner.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadTunnelFile(args[0])
	if err != nil {
		return fmt.Errorf("tunnelctl render: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("tunnelctl render: %w", err)
	}
	text := wireguard.Serialize(cfg)

	if renderOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := fsutil.WriteFileAtomic(filepath.Dir(renderOutput), filepath.Base(renderOutput), []byte(text), fsutil.PrivateFileMode); err != nil {
		return fmt.Errorf("tunnelctl render: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutput)
	return nil
}
