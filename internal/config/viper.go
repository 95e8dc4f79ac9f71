// viper.go loads CLI configuration from file and environment.

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("dsn", "")
	v.SetDefault("environment", "")
	v.SetDefault("release", "")
	v.SetDefault("server_name", "")
	v.SetDefault("queue_size", 1000)
	v.SetDefault("flush_timeout", "2s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Bind environment variables with FAULTLINE_ prefix
	v.SetEnvPrefix("FAULTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Security check: reject DSN secrets in config files
		// Secret keys must be environment-only per 12-factor principles
		if err := validateNoSecretsInConfig(v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DSN:          v.GetString("dsn"),
		Environment:  v.GetString("environment"),
		Release:      v.GetString("release"),
		ServerName:   v.GetString("server_name"),
		QueueSize:    v.GetInt("queue_size"),
		FlushTimeout: v.GetDuration("flush_timeout"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks positive sizes and known level/format names.
func validateConfig(cfg *Config) error {
	if cfg.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive, got %d", cfg.QueueSize)
	}
	if cfg.FlushTimeout <= 0 {
		return fmt.Errorf("flush_timeout must be positive, got %v", cfg.FlushTimeout)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", cfg.LogFormat)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secret keys (12-factor
// principle). A DSN carrying a secret component may live only in the
// FAULTLINE_DSN environment variable, never in a config file.
func validateNoSecretsInConfig(v *viper.Viper) error {
	if !v.InConfig("dsn") {
		return nil
	}
	if dsnCarriesSecret(v.GetString("dsn")) {
		return fmt.Errorf("DSN secret keys not allowed in config files (use FAULTLINE_DSN environment variable)")
	}
	return nil
}

// dsnCarriesSecret reports whether the descriptor's user info has a secret
// part after the public key.
func dsnCarriesSecret(dsn string) bool {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return false
	}
	_, secret, found := strings.Cut(u.User.Username(), ",")
	return found && secret != ""
}
