package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restfold/restfold/internal/config"
)

const testJWTSecret = "config-load-test-secret-0123456789ab"

// setRequiredEnv provides the settings that have no defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RESTFOLD_DATABASE_URL", "postgres://localhost:5432/restfold_test")
	t.Setenv("RESTFOLD_AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("RESTFOLD_AUTH_JWT_ISSUER", "restfold")
	t.Setenv("RESTFOLD_AUTH_JWT_AUDIENCE", "restfold-clients")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "postgres://localhost:5432/restfold_test", cfg.Database.URL)
	assert.Equal(t, testJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RESTFOLD_SERVER_PORT", "9999")
	t.Setenv("RESTFOLD_SERVER_LOG_LEVEL", "debug")
	t.Setenv("RESTFOLD_AUTH_TOKEN_LIFETIME_MINUTES", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoadRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		chaos func(t *testing.T)
	}{
		{
			name: "missing database url",
			chaos: func(t *testing.T) {
				t.Setenv("RESTFOLD_DATABASE_URL", "")
			},
		},
		{
			name: "short jwt secret",
			chaos: func(t *testing.T) {
				t.Setenv("RESTFOLD_AUTH_JWT_SECRET", "too-short")
			},
		},
		{
			name: "unknown log level",
			chaos: func(t *testing.T) {
				t.Setenv("RESTFOLD_SERVER_LOG_LEVEL", "shouty")
			},
		},
		{
			name: "out of range port",
			chaos: func(t *testing.T) {
				t.Setenv("RESTFOLD_SERVER_PORT", "70000")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			tc.chaos(t)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
