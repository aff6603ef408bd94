package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokesheet/internal/config"
)

var keys = []string{
	"POKESHEET_STORE", "POKESHEET_HTTP_ADDR", "POKESHEET_SHUTDOWN_TIMEOUT", "REDIS_URL",
	"POKESHEET_SQLITE_PATH", "POKESHEET_LOG_LEVEL", "POKESHEET_LOG_DEV", "POKESHEET_MISSING_STAT_VALUE",
}

// unsetAll clears the variables for the test and restores them afterwards
func unsetAll(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParseDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, "pokesheet.db", cfg.SQLite.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, 9999.0, cfg.Formula.MissingStatValue)
}

func TestParseOverrides(t *testing.T) {
	unsetAll(t)
	t.Setenv("POKESHEET_STORE", "sqlite")
	t.Setenv("POKESHEET_SQLITE_PATH", "/tmp/sheets.db")
	t.Setenv("POKESHEET_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("POKESHEET_LOG_LEVEL", "debug")
	t.Setenv("POKESHEET_LOG_DEV", "true")
	t.Setenv("POKESHEET_MISSING_STAT_VALUE", "0")
	t.Setenv("POKESHEET_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/sheets.db", cfg.SQLite.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, 0.0, cfg.Formula.MissingStatValue)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestParseRejectsUnknownStore(t *testing.T) {
	unsetAll(t)
	t.Setenv("POKESHEET_STORE", "postgres")

	_, err := config.Parse()
	assert.ErrorContains(t, err, "POKESHEET_STORE")
}

func TestParseRejectsBadDuration(t *testing.T) {
	unsetAll(t)
	t.Setenv("POKESHEET_SHUTDOWN_TIMEOUT", "soon")

	_, err := config.Parse()
	assert.Error(t, err)
}
