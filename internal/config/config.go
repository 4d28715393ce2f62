package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is constructed once in
// main and passed explicitly to every component that needs it.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Picnic   PicnicConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	MaxConnections    int
	MinConnections    int
	MaxConnLifetime   int // seconds
	ConnectTimeout    int // seconds, overall budget for the startup connect loop
	ConnectRetryDelay int // seconds between startup connect attempts
}

// PicnicConfig holds configuration for the external grocery-cart service.
type PicnicConfig struct {
	BaseURL     string
	Username    string
	Password    string
	CountryCode string
	Timeout     int // seconds, per-request HTTP timeout
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration. An empty APIKey disables
// API key authentication.
type AuthConfig struct {
	APIKey string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	// Missing .env is fine; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:              getEnv("SQL_HOST", "localhost"),
			Port:              getEnvAsInt("SQL_PORT", 5432),
			User:              getEnv("SQL_USER", "postgres"),
			Password:          getEnv("SQL_PASSWORD", ""),
			Database:          getEnv("SQL_DATABASE", "fastnic"),
			MaxConnections:    getEnvAsInt("SQL_MAX_CONNECTIONS", 25),
			MinConnections:    getEnvAsInt("SQL_MIN_CONNECTIONS", 5),
			MaxConnLifetime:   getEnvAsInt("SQL_MAX_CONN_LIFETIME", 300),
			ConnectTimeout:    getEnvAsInt("SERVICE_TIMEOUT", 300),
			ConnectRetryDelay: getEnvAsInt("SERVICE_RETRY_DELAY", 5),
		},
		Picnic: PicnicConfig{
			BaseURL:     getEnv("PICNIC_BASE_URL", "https://storefront.picnic.app/api/15"),
			Username:    getEnv("PICNIC_USERNAME", ""),
			Password:    getEnv("PICNIC_PASSWORD", ""),
			CountryCode: getEnv("PICNIC_COUNTRY_CODE", "NL"),
			Timeout:     getEnvAsInt("PICNIC_TIMEOUT", 30),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Database.ConnectTimeout < 1 {
		return fmt.Errorf("database connect timeout must be at least 1 second")
	}

	if c.Database.ConnectRetryDelay < 1 {
		return fmt.Errorf("database connect retry delay must be at least 1 second")
	}

	if c.Picnic.BaseURL == "" {
		return fmt.Errorf("picnic base URL is required")
	}

	if c.Picnic.Username == "" {
		return fmt.Errorf("picnic username is required")
	}

	if c.Picnic.Password == "" {
		return fmt.Errorf("picnic password is required")
	}

	if c.Picnic.Timeout < 1 {
		return fmt.Errorf("picnic timeout must be at least 1 second")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
