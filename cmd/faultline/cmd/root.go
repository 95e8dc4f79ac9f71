package cmd

import (
	"github.com/spf13/cobra"

	"github.com/getfaultline/faultline-go/internal/config"
)

const Version = "0.1.0"

var (
	configFile string
	dsnFlag    string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "faultline",
	Short: "Faultline error reporting client",
	Long:  `Faultline captures diagnostic events and delivers them to an ingestion endpoint over the envelope protocol.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "connection descriptor (scheme://publicKey@host/projectID)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves configuration with flags taking precedence over
// environment and config file values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if dsnFlag != "" {
		cfg.DSN = dsnFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}
