package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearConfigEnv removes every variable LoadConfig reads so each case
// controls exactly what is set. t.Setenv registers the restore; the unset
// makes the variable truly absent rather than present-but-empty.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TOKEN_SECRET", "TOKEN_ALGORITHM", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"DATABASE_URL", "DATABASE_FILE", "MOCK_AUTH", "ENVIRONMENT",
		"LOG_LEVEL", "LOG_FORMAT", "HTTP_ADDR", "SHUTDOWN_GRACE_PERIOD",
		"HOUSEKEEPING_INTERVAL", "USER_PURGE_AFTER",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "HS256", cfg.TokenAlgorithm)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "file:duet.db?_busy_timeout=5000&_journal_mode=WAL", cfg.DSN())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig()
	require.ErrorContains(t, err, "TOKEN_SECRET")
}

func TestLoadConfigRefusesMockAuthOutsideDevelopment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("MOCK_AUTH", "true")
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "MOCK_AUTH")
}

func TestConfigDatabaseURLWins(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "file::memory:?cache=shared",
		DatabaseFile: "ignored.db",
	}
	require.Equal(t, "file::memory:?cache=shared", cfg.DSN())
}

func TestConfigRejectsInvertedTTLs(t *testing.T) {
	cfg := Config{
		TokenSecret: "s",
		AccessTTL:   720,
		RefreshTTL:  12,
		Env:         "development",
	}
	require.ErrorContains(t, cfg.Validate(), "REFRESH_TOKEN_TTL")
}
