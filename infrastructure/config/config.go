package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string
	Environment     string
	ShutdownTimeout time.Duration

	// Persistence configuration
	PersistenceDriver string // "memory" or "dynamodb"

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	OwnerIndex    string // GSI - owner-level file listings
	EventBusName  string

	// Rate limiting
	RateLimitStore string // "memory" or "dynamodb"

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics       bool
	EnableCORS          bool
	EnableInvalidations bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:   getEnv("SERVER_ADDRESS", ":8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		PersistenceDriver: getEnv("PERSISTENCE_DRIVER", "memory"),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "snipvault"),
		OwnerIndex:    getEnv("OWNER_INDEX_NAME", "OwnerIndex"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "snipvault-events"),

		RateLimitStore: getEnv("RATE_LIMIT_STORE", "memory"),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "snipvault"),

		// Logging and features
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		EnableMetrics:       getEnvBool("ENABLE_METRICS", true),
		EnableCORS:          getEnvBool("ENABLE_CORS", true),
		EnableInvalidations: getEnvBool("ENABLE_INVALIDATIONS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.PersistenceDriver {
	case "memory", "dynamodb":
	default:
		return fmt.Errorf("unknown PERSISTENCE_DRIVER %q", c.PersistenceDriver)
	}
	switch c.RateLimitStore {
	case "memory", "dynamodb":
	default:
		return fmt.Errorf("unknown RATE_LIMIT_STORE %q", c.RateLimitStore)
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.PersistenceDriver == "dynamodb" && c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.EnableInvalidations && c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required when invalidations are enabled")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
