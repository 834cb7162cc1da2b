package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oncallops/groupwatch/tools"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "groupwatch",
	Short: "Watch Google Workspace group settings for drift and policy violations",
	Long: `groupwatch polls the Admin Directory and Groups Settings APIs, detects
settings changes via dual content hashing, checks settings against an
enforced policy, and writes change and violation records to a Google Sheet.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; real deployments configure the environment
		// directly.
		if err := godotenv.Load(".env"); err != nil {
			tools.Log.Debugf("No .env file loaded: %v", err)
		}
		tools.InitLogger(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
