package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
platform:
  kind: isv
  base_url: https://tenant.verify.ibm.com
  relying_party_id: example.com
oauth:
  api:
    client_id: api-id
    client_secret: api-secret
  auth:
    client_id: auth-id
    client_secret: auth-secret
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Cache.Kind)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateWindow())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("AUTHGATE_PLATFORM", "isva")
	t.Setenv("AUTHGATE_ADDR", ":9090")
	t.Setenv("AUTHGATE_REDIS_DB", "3")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "isva", cfg.Platform.Kind)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
}

func TestValidateMissingSettings(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform.kind")
	assert.Contains(t, err.Error(), "platform.base_url")
	assert.Contains(t, err.Error(), "oauth.api client pair")
}

func TestValidateRejectsUnknownPlatform(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	cfg.Platform.Kind = "other"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform.kind")
}

func TestValidateRedisNeedsAddr(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	cfg.Cache.Kind = "redis"
	cfg.Cache.Redis.Addr = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.addr")
}

func TestValidateRejectsBadRateWindow(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Window = "soon"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit.window")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
