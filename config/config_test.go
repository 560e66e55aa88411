package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: "9001"
model: gemini-1.5-pro
document_dir: guias
vector_store: weaviate
weaviate_store_config:
  host: https://weaviate.example.com
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, "guias", cfg.DocumentDir)
	assert.Equal(t, "weaviate", cfg.VectorStore)
	assert.Equal(t, "https://weaviate.example.com", cfg.WeaviateStoreConfig.Host)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "model: gemini-1.5-flash\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "data", cfg.DocumentDir)
	assert.Equal(t, "bia_index.bin", cfg.IndexPath)
	assert.Equal(t, "salas_de_apoio.json", cfg.RoomsPath)
	assert.Equal(t, "local", cfg.VectorStore)
}

func TestLoadConfigSecretsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-secret")
	t.Setenv("OPENAI_API_KEY", "openai-secret")
	path := writeConfig(t, "port: \"8000\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-secret", cfg.GeminiAPIKey)
	assert.Equal(t, "openai-secret", cfg.OpenAIAPIKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
