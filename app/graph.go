package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/daemon"
)

func init() { //nolint: gochecknoinits
	graphCmd.Flags().StringVar(&configPath, "etc", "", "Path to the configuration directory")
	graphCmd.Flags().StringVar(&source, "source", "ldap", "Directory source to export (ldap or google)")
	graphCmd.Flags().UintVar(&sourceConfigID, "config", 0, "ID of the stored source configuration")

	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the reconciled identity graph as JSON",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, errNew := daemon.New(&cfg)
		if errNew != nil {
			return errNew
		}

		g, errGraph := d.ExportGraph(source, sourceConfigID)
		if errGraph != nil {
			return errGraph
		}

		out, errEncode := json.MarshalIndent(g, "", "  ")
		if errEncode != nil {
			return fmt.Errorf("failed to encode graph: %w", errEncode)
		}

		cmd.Println(string(out))

		return nil
	},
}
