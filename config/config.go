package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Databricks    DatabricksConfig
	OpenFoodFacts OpenFoodFactsConfig
	Gemini        GeminiConfig
	Store         StoreConfig
	Sessions      SessionsConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabricksConfig holds the primary warehouse configuration. When the token
// is unset the primary source fails and every lookup falls through to the
// public fallback, which keeps the service usable.
type DatabricksConfig struct {
	Host        string `mapstructure:"host"`
	Token       string `mapstructure:"token"`
	WarehouseID string `mapstructure:"warehouse_id"`
}

// OpenFoodFactsConfig holds the fallback API configuration
type OpenFoodFactsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// GeminiConfig holds the text-generation configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// StoreConfig holds the local profile store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SessionsConfig holds wizard/scan session settings
type SessionsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/productgoat/")

	v.SetEnvPrefix("PRODUCTGOAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough to run
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")

	v.SetDefault("gemini.model", "gemini-1.5-flash")

	v.SetDefault("store.path", "data/productgoat.db")

	v.SetDefault("sessions.ttl", "30m")

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("profile store path is required")
	}

	if config.Sessions.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got: %s", config.Sessions.TTL)
	}

	if config.Databricks.Token != "" && config.Databricks.WarehouseID == "" {
		return fmt.Errorf("Databricks warehouse ID is required when a token is set")
	}

	return nil
}
