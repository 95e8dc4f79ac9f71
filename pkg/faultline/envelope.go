// envelope.go encodes events into the three-document wire envelope.

package faultline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// envelopeHeader is the first envelope document.
type envelopeHeader struct {
	EventID EventID  `json:"event_id"`
	SentAt  string   `json:"sent_at,omitempty"`
	SDK     *sdkInfo `json:"sdk,omitempty"`
}

// sdkInfo identifies the client that produced an envelope.
type sdkInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// itemHeader is the second envelope document, framing the payload after it.
type itemHeader struct {
	Type   string `json:"type"`
	Length int    `json:"length"`
}

// eventPayload is the third envelope document, the serialized event itself.
// Field order is part of the wire format; message, event_id, and tags lead.
type eventPayload struct {
	Message     string            `json:"message"`
	EventID     EventID           `json:"event_id"`
	Tags        map[string]string `json:"tags,omitempty"`
	Timestamp   string            `json:"timestamp,omitempty"`
	Platform    string            `json:"platform,omitempty"`
	Level       Level             `json:"level,omitempty"`
	ServerName  string            `json:"server_name,omitempty"`
	Release     string            `json:"release,omitempty"`
	Environment string            `json:"environment,omitempty"`
	StackTrace  string            `json:"stacktrace,omitempty"`
	Extra       map[string]any    `json:"extra,omitempty"`
}

// EncodeEnvelope serializes an event into its wire envelope: the envelope
// header, the item header, and the payload, joined by single newlines with no
// trailing newline. The payload is serialized first so the item header's
// length is its exact byte count. Returns ErrEncodingFailed (wrapped) when
// the event cannot be serialized; the client survives such events.
func EncodeEnvelope(event *Event) ([]byte, error) {
	payload, err := json.Marshal(payloadFromEvent(event))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	header, err := json.Marshal(envelopeHeader{
		EventID: event.ID,
		SentAt:  time.Now().UTC().Format(time.RFC3339Nano),
		SDK:     &sdkInfo{Name: sdkName, Version: sdkVersion},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	item, err := json.Marshal(itemHeader{
		Type:   "event",
		Length: len(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(header) + len(item) + len(payload) + 2)
	buf.Write(header)
	buf.WriteByte('\n')
	buf.Write(item)
	buf.WriteByte('\n')
	buf.Write(payload)
	return buf.Bytes(), nil
}

// payloadFromEvent maps an event onto its wire form.
func payloadFromEvent(event *Event) eventPayload {
	p := eventPayload{
		Message:     event.Message,
		EventID:     event.ID,
		Tags:        event.Tags,
		Platform:    "go",
		Level:       event.Level,
		ServerName:  event.ServerName,
		Release:     event.Release,
		Environment: event.Environment,
		StackTrace:  event.StackTrace,
		Extra:       event.Extra,
	}
	if !event.Timestamp.IsZero() {
		p.Timestamp = event.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return p
}

// Envelope is the decoded form of a wire envelope, for diagnostics and tests.
type Envelope struct {
	// EventID is the identity carried by the envelope header.
	EventID EventID

	// SentAt is the envelope header's transmission timestamp, if present.
	SentAt string

	// Type and Length frame the payload, as declared by the item header.
	Type   string
	Length int

	// Payload is the raw serialized event, exactly Length bytes.
	Payload json.RawMessage
}

// ParseEnvelope splits an encoded envelope into its three documents and
// verifies the item header's length against the payload's actual byte count.
func ParseEnvelope(data []byte) (*Envelope, error) {
	parts := bytes.SplitN(data, []byte("\n"), 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("envelope must contain 3 documents, found %d", len(parts))
	}

	var header envelopeHeader
	if err := json.Unmarshal(parts[0], &header); err != nil {
		return nil, fmt.Errorf("parsing envelope header: %w", err)
	}

	var item itemHeader
	if err := json.Unmarshal(parts[1], &item); err != nil {
		return nil, fmt.Errorf("parsing item header: %w", err)
	}

	payload := parts[2]
	if len(payload) != item.Length {
		return nil, fmt.Errorf("item length %d does not match payload size %d", item.Length, len(payload))
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}

	return &Envelope{
		EventID: header.EventID,
		SentAt:  header.SentAt,
		Type:    item.Type,
		Length:  item.Length,
		Payload: json.RawMessage(payload),
	}, nil
}
