package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/pantrypal/onboarding-backend/internal/pkg/retry"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
	LLMProviderHTTP   = "http"
	LLMProviderMock   = "mock"
)

// Config holds the application configuration
type Config struct {
	// Application identity reported by /health and the heartbeat
	AppName string `env:"APP_NAME" envDefault:"pantrypal-onboarding"`

	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	ServerIdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Storage configuration
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Database configuration, required for the postgres driver
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MigrationsPath      string        `env:"MIGRATIONS_PATH" envDefault:"file://internal/repository/migrations"`

	// In-memory store configuration
	MemoryCfg MemoryStoreConfig `envPrefix:"MEMORY_"`

	// Text completion configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// Signup configuration
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Heartbeat configuration
	HeartbeatSchedule string `env:"HEARTBEAT_SCHEDULE" envDefault:"@every 5m"`

	// Environment (set from flag, not from env var)
	Environment string
}

type MemoryStoreConfig struct {
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"0s"` // 0 keeps records until restart
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

type LLMConfig struct {
	Provider        string               `env:"PROVIDER" envDefault:"openai"`
	Model           string               `env:"MODEL"`
	APIKey          string               `env:"API_KEY"`
	BaseURL         string               `env:"BASE_URL"`
	MaxTokens       int                  `env:"MAX_TOKENS" envDefault:"1024"`
	GatewayEndpoint string               `env:"GATEWAY_ENDPOINT" envDefault:"/invoke"`
	HTTPClientCfg   HTTPClientConfig     `envPrefix:"HTTP_"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// LoadConfig reads .env.<environment> if present and parses the process environment
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	cfg.LLMCfg.Provider = strings.ToLower(cfg.LLMCfg.Provider)

	if cfg.LLMCfg.Model == "" {
		cfg.LLMCfg.Model = defaultModel(cfg.LLMCfg.Provider)
	}

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	case StorageDriverMemory:
	default:
		errors = append(errors, fmt.Sprintf("STORAGE_DRIVER must be one of postgres, memory, got %q", cfg.StorageDriver))
	}

	switch cfg.LLMCfg.Provider {
	case LLMProviderOpenAI, LLMProviderGemini:
		if cfg.LLMCfg.APIKey == "" {
			errors = append(errors, fmt.Sprintf("LLM_API_KEY is required for provider %s", cfg.LLMCfg.Provider))
		}
	case LLMProviderHTTP:
		if cfg.LLMCfg.HTTPClientCfg.Url == "" {
			errors = append(errors, "LLM_HTTP_SERVICE_URL is required for provider http")
		}
	case LLMProviderMock:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of openai, gemini, http, mock, got %q", cfg.LLMCfg.Provider))
	}

	if cfg.LLMCfg.MaxTokens < 1 {
		errors = append(errors, fmt.Sprintf("LLM_MAX_TOKENS must be positive, got %d", cfg.LLMCfg.MaxTokens))
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case LLMProviderOpenAI:
		return "gpt-4o-mini"
	case LLMProviderGemini:
		return "gemini-1.5-flash"
	case LLMProviderHTTP:
		return "us.amazon.nova-2-lite-v1:0"
	default:
		return "mock"
	}
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
