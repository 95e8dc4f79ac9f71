// recover.go provides helpers for capturing panics as fatal events.
// Use these in HTTP handlers, goroutines, or other code that must not crash.

package faultline

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Recover captures a panic, reports it as a fatal event, and returns the
// recovered value. Recover does NOT re-panic. It must be deferred directly;
// recover only stops a panic when called by the deferred function itself:
//
//	func worker(ctx context.Context) {
//	    defer faultline.Recover(ctx, client)
//	    // code that might panic
//	}
//
// When your own deferred function needs the recovered value, call recover
// yourself and hand the value to CapturePanic.
func Recover(ctx context.Context, client *Client) any {
	r := recover()
	if r == nil {
		return nil
	}

	CapturePanic(ctx, client, r)
	return r
}

// CapturePanic reports an already-recovered panic value as a fatal event
// with a stack trace, using the scope attached to ctx if any. It returns the
// event ID, or the empty EventID when the event was dropped.
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        faultline.CapturePanic(ctx, client, r)
//	        w.WriteHeader(http.StatusInternalServerError)
//	    }
//	}()
func CapturePanic(ctx context.Context, client *Client, recovered any) EventID {
	if recovered == nil || client == nil {
		return ""
	}

	event := NewEvent(LevelFatal, formatRecovered(recovered))
	event.StackTrace = string(debug.Stack())

	// Use the scope attached to the context, if any
	scope, _ := ScopeFromContext(ctx)

	return client.CaptureEvent(ctx, event, scope)
}

// formatRecovered formats a recovered panic value as a string.
func formatRecovered(recovered any) string {
	if recovered == nil {
		return "<nil>"
	}
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", recovered)
}
