package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HALCYON_USE_MOCK_LLM", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5010, cfg.Port)
	assert.Equal(t, ":5010", cfg.ListenAddr())
	assert.Equal(t, "gemini-2.0-flash", cfg.ModelName)
	assert.Equal(t, 30*time.Second, cfg.OracleTimeout)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HALCYON_PORT", "8080")
	t.Setenv("HALCYON_GEMINI_API_KEY", "test-key")
	t.Setenv("HALCYON_ORACLE_TIMEOUT", "10s")
	t.Setenv("HALCYON_STORAGE_BACKEND", "mongo")
	t.Setenv("HALCYON_MONGO_URI", "mongodb://db:27017")
	t.Setenv("HALCYON_FERNET_KEY", "0000000000000000000000000000000000000000000=")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 10*time.Second, cfg.OracleTimeout)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	cfg := &Config{Port: 5010, StorageBackend: BackendMemory}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Port: 5010, UseMockLLM: true, StorageBackend: "dynamo"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage backend")
}

func TestValidateRequiresFernetKeyWithMongo(t *testing.T) {
	cfg := &Config{Port: 5010, UseMockLLM: true, StorageBackend: BackendMongo}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FERNET_KEY")
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{Port: -1, UseMockLLM: true, StorageBackend: BackendMemory}

	assert.Error(t, cfg.Validate())
}
