// errors.go defines the error taxonomy for construction, encoding, and dispatch.

package faultline

import (
	"errors"
	"fmt"
)

var (
	// ErrDSNMissing indicates an empty connection descriptor.
	ErrDSNMissing = errors.New("dsn missing")

	// ErrDSNMalformed indicates a descriptor that could not be parsed as a URL.
	ErrDSNMalformed = errors.New("dsn malformed")

	// ErrDSNInvalid indicates a parseable descriptor with a required part missing.
	ErrDSNInvalid = errors.New("dsn invalid")

	// ErrEncodingFailed indicates an event that could not be serialized into
	// an envelope. The event is lost; the client remains usable.
	ErrEncodingFailed = errors.New("envelope encoding failed")

	// ErrTransportClosed indicates use of a transport after Close.
	ErrTransportClosed = errors.New("transport closed")
)

// FlushTimeoutError reports a flush that gave up with work still pending.
type FlushTimeoutError struct {
	// Pending is the number of envelopes still queued or in flight.
	Pending int
}

func (e *FlushTimeoutError) Error() string {
	return fmt.Sprintf("flush timed out with %d envelopes pending", e.Pending)
}
