package app

import (
	"github.com/spf13/cobra"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/daemon"
)

func init() { //nolint: gochecknoinits
	importCmd.Flags().StringVar(&configPath, "etc", "", "Path to the configuration directory")
	importCmd.Flags().StringVar(&source, "source", "ldap", "Directory source to import (ldap or google)")
	importCmd.Flags().UintVar(&sourceConfigID, "config", 0, "ID of the stored source configuration")

	rootCmd.AddCommand(importCmd)
}

var (
	configPath string // Path to the configuration file

	cfg config.Config
	err error

	source         string
	sourceConfigID uint

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Run a directory import for a stored source configuration",
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, errNew := daemon.New(&cfg)
			if errNew != nil {
				return errNew
			}

			return d.RunImport(source, sourceConfigID)
		},
	}
)
