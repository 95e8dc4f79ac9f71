package faultline

import (
	"errors"
	"fmt"
	"testing"
)

func TestFlushTimeoutError_Message(t *testing.T) {
	err := &FlushTimeoutError{Pending: 3}
	want := "flush timed out with 3 envelopes pending"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFlushTimeoutError_UnwrapsWithAs(t *testing.T) {
	wrapped := fmt.Errorf("closing client: %w", &FlushTimeoutError{Pending: 7})

	var timeout *FlushTimeoutError
	if !errors.As(wrapped, &timeout) {
		t.Fatal("errors.As failed to find FlushTimeoutError")
	}
	if timeout.Pending != 7 {
		t.Errorf("Pending = %d, want 7", timeout.Pending)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrDSNMissing,
		ErrDSNMalformed,
		ErrDSNInvalid,
		ErrEncodingFailed,
		ErrTransportClosed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
