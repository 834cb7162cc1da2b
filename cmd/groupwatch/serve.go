package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oncallops/groupwatch/internal/config"
	"github.com/oncallops/groupwatch/internal/webhook"
	"github.com/oncallops/groupwatch/tools"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the webhook endpoints and log incoming events",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			tools.Log.Fatalf("Invalid configuration: %v", err)
		}
		if serveAddr == "" {
			serveAddr = cfg.WebhookAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reporter, err := buildReporter(ctx, cfg)
		if err != nil {
			tools.Log.Fatalf("Failed to build reporter: %v", err)
		}

		server := webhook.NewServer(serveAddr, reporter)
		if err := server.ListenAndServe(ctx); err != nil {
			tools.Log.Fatalf("Webhook server failed: %v", err)
		}
		tools.Log.Info("Webhook server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: WEBHOOK_ADDR env or :8080)")
	rootCmd.AddCommand(serveCmd)
}
