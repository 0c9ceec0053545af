package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
	Places     PlacesConfig
	Catalog    CatalogConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration. The catalog
// falls back to the bundled YAML file when no DSN is set.
type PostgreSQLConfig struct {
	DSN                string        `env:"DATABASE_URL"`
	MaxConnections     int           `env:"PG_MAX_CONNECTIONS" envDefault:"25"`
	MaxIdleConnections int           `env:"PG_MAX_IDLE_CONNECTIONS" envDefault:"5"`
	ConnMaxLifetime    time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	AllowedMethods  []string      `env:"CORS_ALLOWED_METHODS" envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders  []string      `env:"CORS_ALLOWED_HEADERS" envDefault:"Content-Type,Authorization"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	DefaultLimit int `env:"SEARCH_DEFAULT_LIMIT" envDefault:"20"`
	MaxLimit     int `env:"SEARCH_MAX_LIMIT" envDefault:"100"`
	// Workers bounds the scoring fan-out; 0 means GOMAXPROCS.
	Workers int `env:"SEARCH_WORKERS" envDefault:"0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// OpenAIConfig holds settings for the OpenAI-compatible API used for intent
// extraction and embeddings.
type OpenAIConfig struct {
	APIKey              string        `env:"OPENAI_API_KEY"`
	APIBase             string        `env:"OPENAI_API_BASE" envDefault:"https://api.openai.com/v1"`
	ChatModel           string        `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ChatTemperature     float64       `env:"OPENAI_CHAT_TEMPERATURE" envDefault:"0"`
	ChatMaxTokens       int           `env:"OPENAI_CHAT_MAX_TOKENS" envDefault:"1024"`
	EmbeddingModel      string        `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDimensions int           `env:"OPENAI_EMBEDDING_DIMENSIONS" envDefault:"1536"`
	BatchSize           int           `env:"OPENAI_BATCH_SIZE" envDefault:"100"`
	Timeout             time.Duration `env:"OPENAI_TIMEOUT" envDefault:"30s"`
	Enabled             bool
}

// PlacesConfig holds Google Places settings for catalog enrichment
type PlacesConfig struct {
	APIKey       string        `env:"GOOGLE_MAPS_API_KEY"`
	BaseURL      string        `env:"GOOGLE_PLACES_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api/place"`
	RadiusMeters int           `env:"PLACES_RADIUS_METERS" envDefault:"5000"`
	PerCategory  int           `env:"PLACES_PER_CATEGORY" envDefault:"5"`
	RequestGap   time.Duration `env:"PLACES_REQUEST_GAP" envDefault:"100ms"`
	MaxRetries   int           `env:"PLACES_MAX_RETRIES" envDefault:"3"`
	Timeout      time.Duration `env:"PLACES_TIMEOUT" envDefault:"15s"`
}

// CatalogConfig points at an alternative catalog file. Empty uses the
// embedded one.
type CatalogConfig struct {
	Path string `env:"CATALOG_PATH"`
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.OpenAI.Enabled = cfg.OpenAI.APIKey != ""
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Search.DefaultLimit <= 0 || c.Search.MaxLimit <= 0 {
		return fmt.Errorf("search limits must be positive")
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT (%d) exceeds SEARCH_MAX_LIMIT (%d)", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Logging.Format)
	}
	return nil
}

// UsePostgres reports whether the catalog should be served from PostgreSQL.
func (c *Config) UsePostgres() bool {
	return c.PostgreSQL.DSN != ""
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
