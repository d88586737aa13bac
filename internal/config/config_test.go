package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "optiwatt.db", cfg.DBPath)
	assert.InDelta(t, 0.15, cfg.Dashboard.RatePerKWh, 1e-9)
	assert.Equal(t, 5*time.Minute, cfg.Hierarchy.DeletionTTL)
	assert.Equal(t, 2*time.Second, cfg.Reports.ExpertDelay)
	assert.Equal(t, 1200*time.Millisecond, cfg.Auth.LoginDelay)
	assert.Equal(t, "simulated", cfg.Delivery.Provider)
	assert.Equal(t, "gemini-3-flash-preview", cfg.AI.Model)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("port: \"9090\"\nlog:\n  level: debug\nai:\n  base_url: http://localhost:1234/\n  timeout: 5s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))

	t.Setenv("OPTIWATT_DB_PATH", "/tmp/x.db")
	t.Setenv("API_KEY", "k-123")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:1234", cfg.AI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "k-123", cfg.AI.APIKey)
}

func TestLoad_PrefixedKeyWinsOverAPIKey(t *testing.T) {
	t.Setenv("OPTIWATT_AI_API_KEY", "primary")
	t.Setenv("API_KEY", "fallback")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.AI.APIKey)
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"OPTIWATT_DELIVERY_PROVIDER": "carrier-pigeon"}},
		{"aws without bucket", map[string]string{"OPTIWATT_DELIVERY_PROVIDER": "aws"}},
		{"negative rate", map[string]string{"OPTIWATT_DASHBOARD_RATE_PER_KWH": "-1"}},
		{"blank signing key", map[string]string{"OPTIWATT_AUTH_SIGNING_KEY": "   "}},
		{"unknown log level", map[string]string{"OPTIWATT_LOG_LEVEL": "chatty"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("port: [1, 2"), 0o600))
	_, err := Load(dir)
	assert.Error(t, err)
}
