// Package config loads service configuration from HALCYON_-prefixed
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Config struct {
	Port int `envconfig:"PORT" default:"5010"`

	UseMockLLM    bool          `envconfig:"USE_MOCK_LLM" default:"false"`
	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	ModelName     string        `envconfig:"MODEL_NAME" default:"gemini-2.0-flash"`
	OracleTimeout time.Duration `envconfig:"ORACLE_TIMEOUT" default:"30s"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	MongoURI       string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase  string `envconfig:"MONGO_DATABASE" default:"halcyon"`

	// FernetKey is the base64 journal encryption key. Empty is allowed with
	// the memory backend; an ephemeral key is generated at startup.
	FernetKey string `envconfig:"FERNET_KEY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HALCYON", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.StorageBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if !c.UseMockLLM && c.GeminiAPIKey == "" {
		return fmt.Errorf("HALCYON_GEMINI_API_KEY is required unless HALCYON_USE_MOCK_LLM is set")
	}
	if c.StorageBackend == BackendMongo && c.FernetKey == "" {
		return fmt.Errorf("HALCYON_FERNET_KEY is required with the mongo backend")
	}
	return nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
