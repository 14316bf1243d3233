package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv keeps ambient credentials and overrides out of assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "EMBEDDING_MODEL",
		"PINECONE_API_KEY", "PINECONE_INDEX_NAME", "PINECONE_REGION",
		"CATALOG_JSON", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
openai:
  api_key: "sk-test"
  chat_model: "gpt-4o-mini"
  embedding_model: "text-embedding-3-small"

pinecone:
  api_key: "pc-test"
  index_name: "test-vectors"
  region: "eu-west-1"

store:
  backend: "pinecone"
  batch_size: 50
  top_k: 3

catalog:
  path: "products.json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
	assert.Equal(t, "test-vectors", cfg.Pinecone.IndexName)
	assert.Equal(t, "eu-west-1", cfg.Pinecone.Region)
	assert.Equal(t, 50, cfg.Store.BatchSize)
	assert.Equal(t, 3, cfg.Store.TopK)
	assert.Equal(t, "products.json", cfg.Catalog.Path)
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{}"), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, "medical-vectors", cfg.Pinecone.IndexName)
	assert.Equal(t, "us-east-1", cfg.Pinecone.Region)
	assert.Equal(t, "pinecone", cfg.Store.Backend)
	assert.Equal(t, 100, cfg.Store.BatchSize)
	assert.Equal(t, 5, cfg.Store.TopK)
	assert.Equal(t, "wockhardt_products.json", cfg.Catalog.Path)
	assert.InDelta(t, 0.2, cfg.Chat.Temperature, 1e-9)
	assert.InDelta(t, 0.1, cfg.Chat.PlannerTemperature, 1e-9)
	assert.Equal(t, 50, cfg.Chat.PlannerMaxTokens)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
openai:
  api_key: "from-file"
pinecone:
  index_name: "from-file"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))

	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("PINECONE_INDEX_NAME", "env-vectors")
	t.Setenv("PINECONE_REGION", "ap-southeast-1")
	t.Setenv("CATALOG_JSON", "env-products.json")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "env-vectors", cfg.Pinecone.IndexName)
	assert.Equal(t, "ap-southeast-1", cfg.Pinecone.Region)
	assert.Equal(t, "env-products.json", cfg.Catalog.Path)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.OpenAI.APIKey = "sk-test"
		cfg.Pinecone.APIKey = "pc-test"
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid config", func(t *testing.T) {
		assert.Empty(t, valid().Validate())
	})

	t.Run("missing OpenAI key", func(t *testing.T) {
		cfg := valid()
		cfg.OpenAI.APIKey = ""
		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "openai.api_key", errs[0].Field)
	})

	t.Run("missing Pinecone key", func(t *testing.T) {
		cfg := valid()
		cfg.Pinecone.APIKey = ""
		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "pinecone.api_key", errs[0].Field)
	})

	t.Run("pgvector backend requires database URL", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Backend = "pgvector"
		cfg.Database.URL = ""
		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "database.url", errs[0].Field)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Backend = "chroma"
		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "store.backend", errs[0].Field)
	})

	t.Run("bad ranges", func(t *testing.T) {
		cfg := valid()
		cfg.Store.BatchSize = 0
		cfg.Store.TopK = -1
		cfg.Chat.Temperature = 3
		cfg.Chat.PlannerMaxTokens = 5000
		errs := cfg.Validate()
		assert.Len(t, errs, 4)
	})
}
