package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "photo_descriptions", cfg.Qdrant.Collection)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Vision.BaseURL)
	assert.Equal(t, 300, cfg.Vision.MaxTokens)
	assert.Equal(t, "local", cfg.Photos.Backend)
	assert.Equal(t, "./processed_photos", cfg.Photos.OutputDir)
	assert.Equal(t, 4.0, cfg.Pricing.USDPLNRate)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  mode: release
qdrant:
  host: qdrant.internal
  collection: photos_test
photos:
  backend: s3
  bucket: test-photos
pricing:
  usd_pln_rate: 3.75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	assert.Equal(t, "photos_test", cfg.Qdrant.Collection)
	assert.Equal(t, "s3", cfg.Photos.Backend)
	assert.Equal(t, "test-photos", cfg.Photos.Bucket)
	assert.Equal(t, 3.75, cfg.Pricing.USDPLNRate)

	// Values absent from the file keep their defaults
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, 300, cfg.Vision.MaxTokens)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("QDRANT_HOST", "qdrant.cloud")
	t.Setenv("FALLBACK_USD_PLN", "4.25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Vision.APIKey)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, "qdrant.cloud", cfg.Qdrant.Host)
	assert.Equal(t, 4.25, cfg.Pricing.USDPLNRate)
}
