package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncallops/groupwatch/internal/config"
	"github.com/oncallops/groupwatch/tools"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the stored hash baseline",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			tools.Log.Fatalf("Invalid configuration: %v", err)
		}

		ctx := context.Background()
		store, closeStore, err := buildStore(ctx, cfg)
		if err != nil {
			tools.Log.Fatalf("Failed to open state store: %v", err)
		}
		defer closeStore()

		snap, err := store.Load(ctx)
		if err != nil {
			tools.Log.Fatalf("Failed to load baseline: %v", err)
		}

		fmt.Printf("%d groups in baseline (%s backend)\n", len(snap), cfg.StateBackend)
		for _, id := range tools.SortedKeys(snap) {
			entry := snap[id]
			fmt.Printf("  %s  business=%.12s full=%.12s etag=%s\n",
				id, entry.Hashes.BusinessHash, entry.Hashes.FullHash, entry.Etag)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
