package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
database:
  uri: mongodb://localhost:27017/debato
redis:
  uri: redis://localhost:6379/0
gemini:
  apiKey: test-key
  model: gemini-2.5-flash
jwt:
  secret: shhh
  expiryMinutes: 60
cors:
  allowedOrigins:
    - http://localhost:5173
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017/debato", cfg.Database.URI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URI)
	assert.Equal(t, "test-key", cfg.Gemini.ApiKey)
	assert.Equal(t, "shhh", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: shhh
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 24*60, cfg.JWT.ExpiryMinutes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYaml(t *testing.T) {
	path := writeConfigFile(t, "server: [not: valid")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
