// config.go defines the CLI configuration structure and defaults.

package config

import "time"

// Config holds every setting the faultline CLI accepts.
// Precedence: CLI flags > environment > config file > defaults.
type Config struct {
	// DSN identifies the ingestion endpoint to report against.
	DSN string

	// Environment and Release stamp outgoing events.
	Environment string
	Release     string

	// ServerName overrides the reporting host name.
	ServerName string

	// QueueSize is the transport queue capacity.
	QueueSize int

	// FlushTimeout bounds the drain performed when the CLI exits.
	FlushTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is json or text.
	LogFormat string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		QueueSize:    1000,
		FlushTimeout: 2 * time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}
