package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "incident-intake",
	Short: "incident-intake accepts incident reports and scores their urgency",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return fmt.Errorf("load .env file: %w", err)
			}
		}
		if !cmd.Flags().Changed("config") {
			if path := os.Getenv("INTAKE_CONFIG"); path != "" {
				configPath = path
			}
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (YAML)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(urgencyCmd)
	rootCmd.AddCommand(versionCmd)
}
