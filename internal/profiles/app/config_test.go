package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolateEnv points PROFILES_ENV_FILE at a file that doesn't exist so a
// developer's .env can't leak into the test.
func isolateEnv(t *testing.T) {
	t.Setenv("PROFILES_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "profiles.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Zero(t, cfg.TokenTTL)
	require.False(t, cfg.PrivateDirectory)
}

func TestLoadConfigFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PROFILES_DATABASE_DRIVER", "postgres")
	t.Setenv("PROFILES_DATABASE_URL", "postgres://u:p@localhost/profiles")
	t.Setenv("PROFILES_TOKEN_TTL", "24h")
	t.Setenv("PROFILES_PRIVATE_DIRECTORY", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.True(t, cfg.PrivateDirectory)
}

func TestLoadConfigDotEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("LOG_LEVEL=debug\nPROFILES_DATABASE_FILE=from-file.db\n"), 0o600))
	t.Setenv("PROFILES_ENV_FILE", file)

	// Already-set variables win over the file.
	t.Setenv("PROFILES_DATABASE_FILE", "from-env.db")
	// godotenv writes into the process env; make sure t.Setenv restores it.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "from-env.db", cfg.DatabaseFile)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "not-a-number"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bad duration", map[string]string{"PROFILES_TOKEN_TTL": "forever"}},
		{"negative ttl", map[string]string{"PROFILES_TOKEN_TTL": "-1h"}},
		{"unknown driver", map[string]string{"PROFILES_DATABASE_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"PROFILES_DATABASE_DRIVER": "postgres", "PROFILES_DATABASE_URL": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
