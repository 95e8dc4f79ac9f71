// Package multi provides a transport that fans out to multiple transports.
// All transports receive all envelopes; errors are aggregated.
package multi

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/getfaultline/faultline-go/pkg/faultline"
)

// multiTransport fans out to multiple transports.
type multiTransport struct {
	transports []faultline.Transport
}

// NewMultiTransport creates a transport that sends to multiple transports.
// All transports receive all envelopes. Errors are aggregated via errors.Join.
func NewMultiTransport(transports ...faultline.Transport) faultline.Transport {
	return &multiTransport{
		transports: transports,
	}
}

// Send dispatches the envelope to all transports, collecting any errors.
// All transports are called even if some return errors.
func (t *multiTransport) Send(ctx context.Context, envelope []byte) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.Send(ctx, envelope); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes all transports concurrently so slow transports share the
// deadline instead of consuming it in sequence. Every transport is flushed
// regardless of the others' errors.
func (t *multiTransport) Flush(ctx context.Context) error {
	errs := make([]error, len(t.transports))

	var g errgroup.Group
	for i, transport := range t.transports {
		g.Go(func() error {
			errs[i] = transport.Flush(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Close calls Close on all transports, collecting any errors.
func (t *multiTransport) Close() error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
