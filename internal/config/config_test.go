package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"GOOGLE_CUSTOMER_ID", "STATE_BACKEND", "STATE_FILE", "SYNC_WORKERS", "WEBHOOK_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "my_customer", cfg.CustomerID)
	assert.Equal(t, BackendFile, cfg.StateBackend)
	assert.Equal(t, "groupwatch-state.json", cfg.StateFile)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, ":8080", cfg.WebhookAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_CUSTOMER_ID", "C012abcde")
	t.Setenv("SYNC_WORKERS", "12")
	t.Setenv("STATE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://gw:gw@localhost:5432/gw")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "C012abcde", cfg.CustomerID)
	assert.Equal(t, 12, cfg.Workers)
	assert.Equal(t, BackendPostgres, cfg.StateBackend)
}

func TestFromEnvRejectsBadWorkers(t *testing.T) {
	t.Setenv("SYNC_WORKERS", "zero")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNC_WORKERS")
}

func TestValidateBackends(t *testing.T) {
	t.Setenv("STATE_BACKEND", "postgres")
	_, err := FromEnv()
	require.Error(t, err, "postgres backend without DATABASE_URL must fail")

	t.Setenv("STATE_BACKEND", "etcd")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATE_BACKEND")
}
