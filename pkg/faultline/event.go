// event.go defines the canonical diagnostic event structure.

package faultline

import (
	"time"

	"github.com/google/uuid"
)

// Level indicates the severity of an event.
type Level string

const (
	// LevelDebug marks events recorded for development diagnostics.
	LevelDebug Level = "debug"

	// LevelInfo marks informational events.
	LevelInfo Level = "info"

	// LevelWarning marks non-fatal issues that may need attention.
	LevelWarning Level = "warning"

	// LevelError marks recoverable errors that caused an operation to fail.
	LevelError Level = "error"

	// LevelFatal marks unrecoverable errors such as a panic.
	LevelFatal Level = "fatal"
)

// EventID is the unique identifier of an event (UUID string).
type EventID string

// NewEventID returns a fresh random event identifier.
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

// Event is the canonical diagnostic event representation.
// The client backfills missing identity fields before dispatch; the envelope
// encoder owns the wire form, so the struct carries no JSON tags.
type Event struct {
	// Identity fields

	// ID is the unique identifier for this event (UUID).
	// Generated at creation and stable for the event's lifetime.
	ID EventID

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Event details

	// Level indicates the event severity (debug, info, warning, error, fatal).
	Level Level

	// Message is the human-readable description of what happened.
	Message string

	// StackTrace is an optional stack trace, normalized by the sanitizer.
	StackTrace string

	// Deployment context

	// Release identifies the application build that produced the event.
	Release string

	// Environment names the deployment environment (production, staging, ...).
	Environment string

	// ServerName is the host reporting the event.
	ServerName string

	// Arbitrary metadata

	// Tags are indexed key-value pairs, merged with scope tags at capture.
	Tags map[string]string

	// Extra carries unindexed structured context. Values must be
	// JSON-serializable or the envelope encoder rejects the event.
	Extra map[string]any
}

// NewEvent creates an event with a fresh ID, the current time, and the given
// level and message.
func NewEvent(level Level, message string) *Event {
	return &Event{
		ID:        NewEventID(),
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
	}
}
