package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "gemini-embedding-001", cfg.EmbedModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenModel)
	assert.Equal(t, 768, cfg.EmbeddingDim)
	assert.Equal(t, "data/index/study", cfg.IndexPath)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 60, cfg.LLMTimeoutSeconds)
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.True(t, cfg.EnableAPI)
	assert.True(t, cfg.EnableIngestWorker)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("EMBEDDING_DIM", "1536")
	t.Setenv("CHUNK_SIZE", "800")
	t.Setenv("INDEX_PATH", "/tmp/idx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1536, cfg.EmbeddingDim)
	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, "/tmp/idx", cfg.IndexPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key", func(c *Config) { c.GeminiAPIKey = "" }, true},
		{"zero dimension", func(c *Config) { c.EmbeddingDim = 0 }, true},
		{"empty index path", func(c *Config) { c.IndexPath = "" }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				GeminiAPIKey: "key",
				EmbeddingDim: 768,
				IndexPath:    "data/index/study",
				ChunkSize:    500,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingRequired)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
