package main

import (
	"fmt"

	"github.com/bissquit/incident-intake/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "incident-intake %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildDate)
	},
}
