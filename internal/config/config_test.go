package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes every FAULTLINE_ variable a test could pick up.
func clearEnv() {
	for _, key := range []string{
		"FAULTLINE_DSN",
		"FAULTLINE_ENVIRONMENT",
		"FAULTLINE_RELEASE",
		"FAULTLINE_SERVER_NAME",
		"FAULTLINE_QUEUE_SIZE",
		"FAULTLINE_FLUSH_TIMEOUT",
		"FAULTLINE_LOG_LEVEL",
		"FAULTLINE_LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faultline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Empty(t, cfg.DSN)
	assert.Empty(t, cfg.Environment)
	assert.Empty(t, cfg.Release)
	assert.Equal(t, 1000, cfg.QueueSize)
	assert.Equal(t, 2*time.Second, cfg.FlushTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	clearEnv()
	t.Setenv("FAULTLINE_DSN", "https://key@errors.example.com/1")
	t.Setenv("FAULTLINE_ENVIRONMENT", "production")
	t.Setenv("FAULTLINE_SERVER_NAME", "api-01")
	t.Setenv("FAULTLINE_QUEUE_SIZE", "50")
	t.Setenv("FAULTLINE_FLUSH_TIMEOUT", "5s")
	t.Setenv("FAULTLINE_LOG_FORMAT", "json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://key@errors.example.com/1", cfg.DSN)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "api-01", cfg.ServerName)
	assert.Equal(t, 50, cfg.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.FlushTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_SecretDSNAllowedInEnvironment(t *testing.T) {
	clearEnv()
	t.Setenv("FAULTLINE_DSN", "https://pub,secret@errors.example.com/1")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "https://pub,secret@errors.example.com/1", cfg.DSN)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv()
	path := writeConfigFile(t, `
dsn: https://filekey@errors.example.com/9
environment: staging
release: v1.4.0
queue_size: 250
flush_timeout: 3s
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://filekey@errors.example.com/9", cfg.DSN)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "v1.4.0", cfg.Release)
	assert.Equal(t, 250, cfg.QueueSize)
	assert.Equal(t, 3*time.Second, cfg.FlushTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvironmentBeatsFile(t *testing.T) {
	clearEnv()
	path := writeConfigFile(t, "environment: staging\n")
	t.Setenv("FAULTLINE_ENVIRONMENT", "production")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadConfig_RejectsSecretDSNInFile(t *testing.T) {
	clearEnv()
	path := writeConfigFile(t, "dsn: https://pub,verysecret@errors.example.com/1\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAULTLINE_DSN")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		envKey  string
		value   string
		wantErr string
	}{
		{"negative queue size", "FAULTLINE_QUEUE_SIZE", "-5", "queue_size must be positive"},
		{"zero flush timeout", "FAULTLINE_FLUSH_TIMEOUT", "0s", "flush_timeout must be positive"},
		{"unknown log level", "FAULTLINE_LOG_LEVEL", "verbose", "log_level must be"},
		{"unknown log format", "FAULTLINE_LOG_FORMAT", "xml", "log_format must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			t.Setenv(tt.envKey, tt.value)

			_, err := LoadConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSNCarriesSecret(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want bool
	}{
		{"public only", "https://pub@errors.example.com/1", false},
		{"with secret", "https://pub,secret@errors.example.com/1", true},
		{"trailing comma only", "https://pub,@errors.example.com/1", false},
		{"no user info", "https://errors.example.com/1", false},
		{"empty", "", false},
		{"unparseable", ":", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dsnCarriesSecret(tt.dsn))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1000, cfg.QueueSize)
	assert.Equal(t, 2*time.Second, cfg.FlushTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"text info", "info", "text"},
		{"json debug", "debug", "json"},
		{"unknown level falls back", "chatty", "text"},
		{"unknown format falls back", "info", "pretty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(&Config{LogLevel: tt.level, LogFormat: tt.format})
			require.NotNil(t, logger)
		})
	}
}
