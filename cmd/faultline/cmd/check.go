package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getfaultline/faultline-go/pkg/faultline"
)

var checkCmd = &cobra.Command{
	Use:   "check [dsn]",
	Short: "Validate a connection descriptor and print the derived endpoint",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	raw := dsnFlag
	if len(args) == 1 {
		raw = args[0]
	}
	if raw == "" {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		raw = cfg.DSN
	}

	dsn, err := faultline.ParseDSN(raw)
	if err != nil {
		switch {
		case errors.Is(err, faultline.ErrDSNMissing):
			return fmt.Errorf("no DSN given (pass one as an argument, via --dsn, or FAULTLINE_DSN)")
		case errors.Is(err, faultline.ErrDSNMalformed):
			return fmt.Errorf("DSN is not a parseable URL: %w", err)
		default:
			return fmt.Errorf("DSN rejected: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "public key:   %s\n", dsn.PublicKey())
	fmt.Fprintf(cmd.OutOrStdout(), "envelope URL: %s\n", dsn.EnvelopeURL())
	return nil
}
