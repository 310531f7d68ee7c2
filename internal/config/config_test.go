package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "ENVIRONMENT", "PORT", "AWS_REGION", "TABLE_NAME",
		"EVENT_BUS_NAME", "LOG_LEVEL", "CEILING_AMOUNT",
		"ENABLE_METRICS", "ENABLE_CIRCUIT_BREAKER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, float64(DefaultCeiling), cfg.CeilingAmount)
	assert.Empty(t, cfg.TableName)
	assert.True(t, cfg.Features.EnableMetrics)
	assert.True(t, cfg.Features.EnableCircuitBreaker)
	assert.False(t, cfg.Features.EnableEvents)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("TABLE_NAME", "case-graphs")
	t.Setenv("EVENT_BUS_NAME", "claims-bus")
	t.Setenv("CEILING_AMOUNT", "25000")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "case-graphs", cfg.TableName)
	assert.Equal(t, "claims-bus", cfg.EventBusName)
	assert.True(t, cfg.Features.EnableEvents, "configuring a bus enables events")
	assert.Equal(t, 25000.0, cfg.CeilingAmount)
	assert.False(t, cfg.Features.EnableMetrics)
}

func TestLoadYamlFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: 7070\nceilingAmount: 12000\nlogLevel: debug\n",
	), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 12000.0, cfg.CeilingAmount)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7070\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadValidation(t *testing.T) {
	t.Run("unknown environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "staging")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")
		_, err := Load()
		assert.Error(t, err)
	})
}
