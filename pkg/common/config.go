package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SHIKI_CLIENT_APP_NAME or SHIKI_STORE_DRIVER.
const EnvPrefix = "SHIKI"

// Config holds all configuration for a shiki client
type Config struct {
	Environment string          `toml:"environment" split_words:"true"`
	Client      ClientConfig    `toml:"client"`
	RateLimit   RateLimitConfig `toml:"rate_limit" split_words:"true"`
	Store       StoreConfig     `toml:"store"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ClientConfig holds the OAuth application registration and API settings
type ClientConfig struct {
	AppName      string `toml:"app_name" split_words:"true"`
	ClientID     string `toml:"client_id" split_words:"true"`
	ClientSecret string `toml:"client_secret" split_words:"true"`
	RedirectURI  string `toml:"redirect_uri" split_words:"true"`
	Scopes       string `toml:"scopes"`                       // space or plus delimited
	AuthCode     string `toml:"auth_code" split_words:"true"` // one-time code from the authorize page
	APIDomain    string `toml:"api_domain" split_words:"true"`
	Timeout      string `toml:"timeout"`
	StrictErrors bool   `toml:"strict_errors" split_words:"true"`
}

// GetTimeout parses and returns the HTTP timeout duration
func (c *ClientConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Restricted reports whether only an application name was configured.
func (c *ClientConfig) Restricted() bool {
	return c.ClientID == "" && c.ClientSecret == "" && c.Scopes == "" && c.AuthCode == ""
}

// RateLimitConfig holds the request budget shared by all calls of one client
type RateLimitConfig struct {
	PerSecond int `toml:"per_second" split_words:"true"`
	PerMinute int `toml:"per_minute" split_words:"true"`
}

// StoreConfig selects the credential store driver. Settings are passed
// through to the driver untouched.
type StoreConfig struct {
	Driver   string         `toml:"driver"`
	Settings map[string]any `toml:"settings" ignored:"true"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Client: ClientConfig{
			APIDomain: "shikimori.one",
			Timeout:   "30s",
		},
		RateLimit: RateLimitConfig{
			PerSecond: 5,
			PerMinute: 90,
		},
		Store: StoreConfig{
			Driver:   "file",
			Settings: map[string]any{"dir": "."},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies SHIKI_* environment variables on top of config.
// Unset variables leave the file values alone.
func applyEnvOverrides(config *Config) error {
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	config.Store.Driver = strings.ToLower(strings.TrimSpace(config.Store.Driver))
	return nil
}

// ValidateRequired returns the names of required fields that are missing.
// A config carrying only an app name is valid and selects restricted mode.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Client.AppName) == "" {
		missing = append(missing, "client.app_name")
	}
	if c.Client.Restricted() {
		return missing
	}
	if c.Client.ClientID == "" {
		missing = append(missing, "client.client_id")
	}
	if c.Client.ClientSecret == "" {
		missing = append(missing, "client.client_secret")
	}
	if c.Client.Scopes == "" {
		missing = append(missing, "client.scopes")
	}
	return missing
}
