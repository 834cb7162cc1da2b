// Package config reads the runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	CredentialsPath string
	ImpersonateUser string
	CustomerID      string

	SpreadsheetID string
	PolicyFile    string

	StateBackend string
	StateFile    string
	DatabaseURL  string

	Workers     int
	WebhookAddr string
}

// FromEnv builds the config; .env loading happens earlier at process start.
func FromEnv() (Config, error) {
	cfg := Config{
		CredentialsPath: strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		ImpersonateUser: strings.TrimSpace(os.Getenv("GOOGLE_IMPERSONATE_USER")),
		CustomerID:      envDefault("GOOGLE_CUSTOMER_ID", "my_customer"),
		SpreadsheetID:   strings.TrimSpace(os.Getenv("REPORT_SPREADSHEET_ID")),
		PolicyFile:      strings.TrimSpace(os.Getenv("POLICY_FILE")),
		StateBackend:    envDefault("STATE_BACKEND", BackendFile),
		StateFile:       envDefault("STATE_FILE", "groupwatch-state.json"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		WebhookAddr:     envDefault("WEBHOOK_ADDR", ":8080"),
		Workers:         5,
	}

	if raw := strings.TrimSpace(os.Getenv("SYNC_WORKERS")); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers < 1 {
			return Config{}, fmt.Errorf("SYNC_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StateBackend {
	case BackendFile:
		if c.StateFile == "" {
			return fmt.Errorf("STATE_FILE is required for the file backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q (want %s or %s)", c.StateBackend, BackendFile, BackendPostgres)
	}
	return nil
}

func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
