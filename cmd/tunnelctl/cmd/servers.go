package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/catalog"
)

var serversJSON bool

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List catalog servers",
	Long:  "List the servers in the catalog that can be passed to up --server.",
	Args:  cobra.NoArgs,
	RunE:  runServers,
}

func init() {
	serversCmd.Flags().BoolVar(&serversJSON, "json", false, "print JSON")
	rootCmd.AddCommand(serversCmd)
}

// serverEntry is one row of the servers listing. Keys never leave the catalog.
type serverEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Endpoint string `json:"endpoint"`
}

func runServers(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv("servers")
	if err != nil {
		return err
	}
	src, err := catalog.Open(e.cfg.Catalog, e.logger)
	if err != nil {
		return fmt.Errorf("tunnelctl servers: %w", err)
	}

	servers := src.List()
	entries := make([]serverEntry, 0, len(servers))
	for _, s := range servers {
		entries = append(entries, serverEntry{
			ID:       s.ID,
			Name:     s.Name,
			Location: s.Location,
			Endpoint: s.Config.Endpoint,
		})
	}

	w := cmd.OutOrStdout()
	if serversJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tENDPOINT")
	for _, s := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Location, s.Endpoint)
	}
	return tw.Flush()
}
