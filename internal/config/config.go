package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultLocation is used whenever a request carries no location hint.
const DefaultLocation = "Vancouver, BC"

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Search     SearchConfig
	Chat       ChatConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
	Tracing    TracingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	AutoSchema         bool // create tables and seed mock listings on startup
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// StorageConfig selects the storage backend ("postgres" or "memory")
type StorageConfig struct {
	Driver   string
	SeedData bool
}

// RedisConfig holds Redis configuration for session tracking.
// An empty Addr keeps sessions in process memory.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL int // seconds
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// ChatConfig holds conversation pipeline configuration
type ChatConfig struct {
	DefaultLocation string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey              string
	APIBase             string
	ChatModel           string
	ChatTemperature     float64
	ChatMaxTokens       int
	EmbeddingModel      string
	EmbeddingDimensions int
	BatchSize           int
	Timeout             int // seconds
	Enabled             bool
}

// TracingConfig holds OpenTelemetry configuration
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	apiKey := getEnv("OPENAI_API_KEY", getEnv("OPENAI_API_KEY_ENV_VAR", ""))

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "property_chat"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			AutoSchema:         getEnvAsBool("PG_AUTO_SCHEMA", true),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 5000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Session-Id"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", "postgres")),
			SeedData: getEnvAsBool("STORAGE_SEED_DATA", true),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsInt("SESSION_TTL_SECONDS", 86400),
		},
		Search: SearchConfig{
			DefaultLimit: getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvAsInt("SEARCH_MAX_LIMIT", 100),
		},
		Chat: ChatConfig{
			DefaultLocation: getEnv("DEFAULT_LOCATION", DefaultLocation),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:              apiKey,
			APIBase:             strings.TrimRight(getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"), "/"),
			ChatModel:           getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
			ChatTemperature:     getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.7),
			ChatMaxTokens:       getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 1024),
			EmbeddingModel:      getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimensions: getEnvAsInt("OPENAI_EMBEDDING_DIMENSIONS", 1536),
			BatchSize:           getEnvAsInt("OPENAI_BATCH_SIZE", 100),
			Timeout:             getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:             apiKey != "",
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "property-chat"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q, must be one of: postgres, memory", c.Storage.Driver)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("SEARCH_MAX_LIMIT (%d) cannot be lower than SEARCH_DEFAULT_LIMIT (%d)", c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	if strings.TrimSpace(c.Chat.DefaultLocation) == "" {
		c.Chat.DefaultLocation = DefaultLocation
	}
	if c.OpenAI.BatchSize <= 0 {
		c.OpenAI.BatchSize = 100
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("invalid float value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}
