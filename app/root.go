// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dirgraph",
	Short: "dirgraph imports directory data into a unified identity graph",
	Long: `dirgraph imports users, groups, and memberships from Google Workspace
Directory and LDAP/Active Directory sources, reconciles them into a unified
identity store, and exports the result as a node/link graph for visualisation.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
