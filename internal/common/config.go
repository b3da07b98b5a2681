// Package common provides shared utilities for Paperdesk
package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sjcallan/paperdesk/internal/interfaces"
)

// Config holds all configuration for Paperdesk
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Auth        AuthConfig      `toml:"auth"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	MarketFeed MarketFeedConfig `toml:"marketfeed"`
	Gemini     GeminiConfig     `toml:"gemini"`
}

// MarketFeedConfig holds quote feed API configuration
type MarketFeedConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	CacheTTL  string `toml:"cache_ttl"`
}

// GetTimeout parses and returns the timeout duration
func (c *MarketFeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the quote cache TTL.
func (c *MarketFeedConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// PortfolioConfig holds portfolio engine configuration.
type PortfolioConfig struct {
	StartingCash float64 `toml:"starting_cash"`
}

// AuthConfig holds authentication configuration for JWT.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000",
			Namespace: "paperdesk",
			Database:  "paperdesk",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			MarketFeed: MarketFeedConfig{
				BaseURL:   "https://api.marketfeed.dev/v1",
				RateLimit: 10,
				Timeout:   "30s",
				CacheTTL:  "60s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Portfolio: PortfolioConfig{
			StartingCash: 100000,
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PAPERDESK_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PAPERDESK_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PAPERDESK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PAPERDESK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Storage overrides
	if v := os.Getenv("PAPERDESK_STORAGE_ADDRESS"); v != "" {
		config.Storage.Address = v
	}
	if v := os.Getenv("PAPERDESK_STORAGE_NAMESPACE"); v != "" {
		config.Storage.Namespace = v
	}
	if v := os.Getenv("PAPERDESK_STORAGE_DATABASE"); v != "" {
		config.Storage.Database = v
	}
	if v := os.Getenv("PAPERDESK_STORAGE_USERNAME"); v != "" {
		config.Storage.Username = v
	}
	if v := os.Getenv("PAPERDESK_STORAGE_PASSWORD"); v != "" {
		config.Storage.Password = v
	}

	// Client API keys
	for _, name := range []string{"MARKETFEED_API_KEY", "PAPERDESK_MARKETFEED_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.MarketFeed.APIKey = v
			break
		}
	}
	for _, name := range []string{"GEMINI_API_KEY", "PAPERDESK_GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Gemini.APIKey = v
			break
		}
	}

	// Auth overrides
	if v := os.Getenv("PAPERDESK_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("PAPERDESK_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	if v := os.Getenv("PAPERDESK_STARTING_CASH"); v != "" {
		if cash, err := strconv.ParseFloat(v, 64); err == nil && cash > 0 {
			config.Portfolio.StartingCash = cash
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of required production settings that are
// missing or still at insecure defaults.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Auth.JWTSecret == "" || strings.Contains(c.Auth.JWTSecret, "change") {
		missing = append(missing, "auth.jwt_secret")
	}
	if c.Storage.Address == "" {
		missing = append(missing, "storage.address")
	}
	return missing
}

// ResolveStartingCash resolves the paper-trading starting balance for a user.
// Priority: per-user KV "starting_cash" > config value > engine default.
func ResolveStartingCash(ctx context.Context, store interfaces.InternalStore, userID string, configDefault float64) float64 {
	if store != nil {
		if kv, err := store.GetUserKV(ctx, userID, "starting_cash"); err == nil && kv != nil {
			if cash, err := strconv.ParseFloat(kv.Value, 64); err == nil && cash > 0 {
				return cash
			}
		}
	}
	if configDefault > 0 {
		return configDefault
	}
	return 100000
}
