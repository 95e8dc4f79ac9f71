package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getfaultline/faultline-go/internal/config"
	"github.com/getfaultline/faultline-go/pkg/faultline"
	"github.com/getfaultline/faultline-go/pkg/faultline/transports/stderr"
)

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Capture a message event and deliver it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("level", "info", "event level (debug, info, warning, error, fatal)")
	sendCmd.Flags().StringArray("tag", nil, "event tag as key=value (repeatable)")
	sendCmd.Flags().String("release", "", "release to stamp on the event")
	sendCmd.Flags().String("environment", "", "environment to stamp on the event")
	sendCmd.Flags().Bool("sanitize", true, "redact secret-looking content before sending")
	sendCmd.Flags().Bool("runtime-info", false, "attach process state (memory, goroutines, uptime)")
	sendCmd.Flags().Bool("dry-run", false, "print the envelope to stderr instead of sending")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := config.NewLogger(cfg)

	if cmd.Flags().Changed("release") {
		cfg.Release, _ = cmd.Flags().GetString("release")
	}
	if cmd.Flags().Changed("environment") {
		cfg.Environment, _ = cmd.Flags().GetString("environment")
	}

	if cfg.DSN == "" {
		return fmt.Errorf("--dsn or FAULTLINE_DSN required")
	}

	level, err := parseLevel(mustGetString(cmd, "level"))
	if err != nil {
		return err
	}

	opts := faultline.Options{
		DSN:          cfg.DSN,
		Release:      cfg.Release,
		Environment:  cfg.Environment,
		ServerName:   cfg.ServerName,
		QueueSize:    cfg.QueueSize,
		FlushTimeout: cfg.FlushTimeout,
		Logger:       logger,
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		opts.Transport = stderr.NewStderrTransport(stderr.WithVerbose())
	}

	client, err := faultline.NewClient(opts)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	scope := faultline.NewScope()
	tags, _ := cmd.Flags().GetStringArray("tag")
	for _, pair := range tags {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			client.Close()
			return fmt.Errorf("invalid tag %q, want key=value", pair)
		}
		scope.SetTag(key, value)
	}
	if sanitize, _ := cmd.Flags().GetBool("sanitize"); sanitize {
		scope.AddProcessor(faultline.NewDefaultSanitizer())
	}
	if runtimeInfo, _ := cmd.Flags().GetBool("runtime-info"); runtimeInfo {
		scope.AddProcessor(faultline.NewRuntimeInfo())
	}

	event := faultline.NewEvent(level, args[0])
	eventID := client.CaptureEvent(cmd.Context(), event, scope)
	if eventID == "" {
		client.Close()
		return fmt.Errorf("event was dropped before dispatch")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FlushTimeout)
	defer cancel()
	if err := client.Flush(ctx); err != nil {
		logger.Warn("flush incomplete", "error", err)
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close client: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "event %s dispatched\n", eventID)
	return nil
}

// parseLevel maps a level flag value onto an event level.
func parseLevel(s string) (faultline.Level, error) {
	switch s {
	case "debug":
		return faultline.LevelDebug, nil
	case "info":
		return faultline.LevelInfo, nil
	case "warning":
		return faultline.LevelWarning, nil
	case "error":
		return faultline.LevelError, nil
	case "fatal":
		return faultline.LevelFatal, nil
	default:
		return "", fmt.Errorf("unknown level %q, want debug, info, warning, error, or fatal", s)
	}
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
