// Package noop provides a no-operation transport that discards all envelopes.
// Useful for testing and for disabling error reporting.
package noop

import (
	"context"

	"github.com/getfaultline/faultline-go/pkg/faultline"
)

// noopTransport discards all envelopes.
type noopTransport struct{}

// NewNoopTransport creates a transport that discards all envelopes.
// All methods return nil and perform no operations.
func NewNoopTransport() faultline.Transport {
	return &noopTransport{}
}

// Send discards the envelope and returns nil.
func (t *noopTransport) Send(ctx context.Context, envelope []byte) error {
	return nil
}

// Flush is a no-op and returns nil.
func (t *noopTransport) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op and returns nil.
func (t *noopTransport) Close() error {
	return nil
}
