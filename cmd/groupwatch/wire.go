package main

import (
	"context"
	"fmt"

	"github.com/oncallops/groupwatch/internal/config"
	"github.com/oncallops/groupwatch/internal/googleclient"
	"github.com/oncallops/groupwatch/internal/policy"
	"github.com/oncallops/groupwatch/internal/report"
	"github.com/oncallops/groupwatch/internal/state"
	"github.com/oncallops/groupwatch/tools"
)

// buildStore picks the state backend from config. The caller owns closing
// when the returned closer is non-nil.
func buildStore(ctx context.Context, cfg config.Config) (state.Store, func(), error) {
	switch cfg.StateBackend {
	case config.BackendPostgres:
		store, err := state.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres state store: %w", err)
		}
		return store, func() { store.Close() }, nil
	default:
		return state.NewFileStore(cfg.StateFile), func() {}, nil
	}
}

// buildReporter uses the spreadsheet sink when one is configured, the log
// otherwise.
func buildReporter(ctx context.Context, cfg config.Config) (report.Reporter, error) {
	if cfg.SpreadsheetID == "" {
		tools.Log.Debug("No REPORT_SPREADSHEET_ID set, reporting to the log")
		return report.LogReporter{}, nil
	}

	svc, err := googleclient.NewSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return report.NewSheetsReporter(svc, cfg.SpreadsheetID), nil
}

// loadPolicy reads the configured policy file, falling back to the built-in
// defaults when none is configured.
func loadPolicy(path string) (policy.Policy, error) {
	if path == "" {
		tools.Log.Debug("No policy file configured, using defaults")
		return policy.Default(), nil
	}
	return policy.Load(path)
}
