package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store types understood by the store factory
const (
	StoreTypeDynamoDB = "dynamodb"
	StoreTypeSQLite   = "sqlite"
	StoreTypeMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Store       StoreConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	RateLimit   RateLimitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// StoreConfig selects and configures the causes store
type StoreConfig struct {
	Type             string
	Table            string
	Region           string
	DynamoDBEndpoint string
}

// DatabaseConfig holds SQLite configuration for the local store
type DatabaseConfig struct {
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
}

// JWTConfig holds bearer token verification settings for the local server
type JWTConfig struct {
	Secret string
	Issuer string
}

// RateLimitConfig holds local server rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORE_TYPE", StoreTypeSQLite)
	v.SetDefault("CAUSES_TABLE", "causes")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DB_CONNECTION_STRING", "./data/causes.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("JWT_ISSUER", "causes-api")
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Store: StoreConfig{
			Type:             strings.ToLower(v.GetString("STORE_TYPE")),
			Table:            v.GetString("CAUSES_TABLE"),
			Region:           v.GetString("AWS_REGION"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		Database: DatabaseConfig{
			ConnectionString: v.GetString("DB_CONNECTION_STRING"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreTypeDynamoDB, StoreTypeSQLite, StoreTypeMemory:
	default:
		return fmt.Errorf("unsupported store type: %q", c.Store.Type)
	}

	if strings.TrimSpace(c.Store.Table) == "" {
		return fmt.Errorf("causes table name is required")
	}

	if c.Store.Type == StoreTypeSQLite && c.Database.ConnectionString == "" {
		return fmt.Errorf("database connection string is required for sqlite store")
	}

	return nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
