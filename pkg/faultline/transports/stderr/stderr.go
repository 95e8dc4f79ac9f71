// Package stderr provides a transport that prints envelopes to stderr in
// human-readable format. Useful for development and debugging.
package stderr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/getfaultline/faultline-go/pkg/faultline"
)

// StderrTransportOption configures the stderr transport.
type StderrTransportOption func(*stderrTransportConfig)

type stderrTransportConfig struct {
	verbose bool
}

// WithVerbose enables full payload output including stack traces and extra data.
func WithVerbose() StderrTransportOption {
	return func(c *stderrTransportConfig) {
		c.verbose = true
	}
}

// stderrTransport writes envelopes to stderr in human-readable format.
type stderrTransport struct {
	verbose bool
}

// NewStderrTransport creates a transport that writes to stderr.
func NewStderrTransport(opts ...StderrTransportOption) faultline.Transport {
	cfg := &stderrTransportConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrTransport{
		verbose: cfg.verbose,
	}
}

// payloadView is the subset of payload fields shown in the summary lines.
type payloadView struct {
	Message    string            `json:"message"`
	Level      string            `json:"level"`
	Tags       map[string]string `json:"tags"`
	StackTrace string            `json:"stacktrace"`
}

// Send decodes the envelope and prints it to stderr.
func (t *stderrTransport) Send(ctx context.Context, envelope []byte) error {
	env, err := faultline.ParseEnvelope(envelope)
	if err != nil {
		// Print raw rather than lose the envelope
		fmt.Fprintf(os.Stderr, "[FAULTLINE] undecodable envelope (%d bytes): %v\n", len(envelope), err)
		return nil
	}

	var payload payloadView
	_ = json.Unmarshal(env.Payload, &payload)

	level := strings.ToUpper(payload.Level)
	if level == "" {
		level = "EVENT"
	}

	// Format: [FAULTLINE] <sent_at> <LEVEL> <type> <event_id> (<n> bytes)
	fmt.Fprintf(os.Stderr, "[FAULTLINE] %s %s %s %s (%d bytes)\n",
		env.SentAt, level, env.Type, env.EventID, env.Length)

	if payload.Message != "" {
		fmt.Fprintf(os.Stderr, "        Message: %s\n", payload.Message)
	}

	if len(payload.Tags) > 0 {
		pairs := make([]string, 0, len(payload.Tags))
		for key, value := range payload.Tags {
			pairs = append(pairs, fmt.Sprintf("%s=%s", key, value))
		}
		fmt.Fprintf(os.Stderr, "        Tags: %s\n", strings.Join(pairs, " "))
	}

	if t.verbose {
		if payload.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "        Stack trace:\n")
			for _, line := range strings.Split(payload.StackTrace, "\n") {
				fmt.Fprintf(os.Stderr, "          %s\n", line)
			}
		}

		var pretty map[string]any
		if err := json.Unmarshal(env.Payload, &pretty); err == nil {
			if raw, err := json.MarshalIndent(pretty, "        ", "  "); err == nil {
				fmt.Fprintf(os.Stderr, "        Payload: %s\n", raw)
			}
		}
	}

	return nil
}

// Flush is a no-op for the stderr transport.
func (t *stderrTransport) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for the stderr transport.
func (t *stderrTransport) Close() error {
	return nil
}
