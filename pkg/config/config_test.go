package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Token)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pgrest.yaml")
	content := []byte(`
baseURL: https://api.example.com
token: secret
schema: tenant_a
timeout: 5s
headers:
  X-Env: staging
  content-profile: tenant_b
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "tenant_a", cfg.Schema)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	// Keys come back canonicalized regardless of the YAML spelling;
	// viper lowercases them during unmarshal.
	assert.Equal(t, "staging", cfg.Headers["X-Env"])
	assert.Equal(t, "tenant_b", cfg.Headers["Content-Profile"])
}
