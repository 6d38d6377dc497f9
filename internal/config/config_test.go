package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LLM_PROVIDER", "mock")

	cfg, err := LoadConfig("test")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, LLMProviderMock, cfg.LLMCfg.Provider)
	assert.Equal(t, "mock", cfg.LLMCfg.Model)
	assert.Equal(t, 1024, cfg.LLMCfg.MaxTokens)
	assert.Equal(t, uint(1), cfg.LLMCfg.Retry.Attempts)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 90*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoadConfigRequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LLM_PROVIDER", "mock")

	_, err := LoadConfig("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfigRequiresAPIKeyForOpenAI(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_API_KEY", "")

	_, err := LoadConfig("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LLM_PROVIDER", "bedrock")

	_, err := LoadConfig("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
