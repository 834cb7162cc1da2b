package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/oncallops/groupwatch/internal/config"
	"github.com/oncallops/groupwatch/internal/googleclient"
	"github.com/oncallops/groupwatch/internal/sync"
	"github.com/oncallops/groupwatch/internal/workspace"
	"github.com/oncallops/groupwatch/tools"
)

var (
	dryRun     bool
	enforce    bool
	policyPath string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one watch cycle against the directory",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			tools.Log.Fatalf("Invalid configuration: %v", err)
		}

		if policyPath == "" {
			policyPath = cfg.PolicyFile
		}
		pol, err := loadPolicy(policyPath)
		if err != nil {
			tools.Log.Fatalf("Failed to load policy: %v", err)
		}

		ctx := context.Background()

		directorySvc, err := googleclient.NewDirectoryService(ctx)
		if err != nil {
			tools.Log.Fatalf("Failed to create directory service: %v", err)
		}
		settingsSvc, err := googleclient.NewGroupsSettingsService(ctx)
		if err != nil {
			tools.Log.Fatalf("Failed to create groups settings service: %v", err)
		}

		store, closeStore, err := buildStore(ctx, cfg)
		if err != nil {
			tools.Log.Fatalf("Failed to open state store: %v", err)
		}
		defer closeStore()

		reporter, err := buildReporter(ctx, cfg)
		if err != nil {
			tools.Log.Fatalf("Failed to build reporter: %v", err)
		}

		pipeline := &sync.Pipeline{
			Directory: workspace.NewAdminDirectory(directorySvc, cfg.CustomerID),
			Settings:  workspace.NewGroupsSettings(settingsSvc),
			Store:     store,
			Reporter:  reporter,
			Options: sync.Options{
				Policy:  pol,
				DryRun:  dryRun,
				Enforce: enforce,
				Workers: cfg.Workers,
			},
		}

		start := time.Now()
		result, err := pipeline.Run(ctx)
		if err != nil {
			tools.Log.Fatalf("Sync run failed: %v", err)
		}
		tools.Log.Infof("Finished watch cycle over %d groups in %s (run %s)",
			result.Groups, time.Since(start), result.Run.ID)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report only; do not patch settings or update the baseline")
	syncCmd.Flags().BoolVar(&enforce, "enforce", false, "Patch violating settings back to the required values")
	syncCmd.Flags().StringVar(&policyPath, "policy", "", "Path to the policy YAML (default: POLICY_FILE env)")
	rootCmd.AddCommand(syncCmd)
}
