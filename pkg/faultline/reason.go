// reason.go enumerates why captured events never reached their destination.

package faultline

// DiscardReason classifies why an event was discarded before transmission or
// failed to be delivered. Reasons appear in logs and as the label on the
// dropped-events metric.
type DiscardReason string

const (
	// ReasonEventProcessor indicates a scope processor vetoed the event.
	ReasonEventProcessor DiscardReason = "event_processor"

	// ReasonBeforeSend indicates the send filter vetoed the event.
	ReasonBeforeSend DiscardReason = "before_send"

	// ReasonEncodingError indicates the event could not be serialized.
	ReasonEncodingError DiscardReason = "encoding_error"

	// ReasonQueueOverflow indicates the transport queue was full.
	ReasonQueueOverflow DiscardReason = "queue_overflow"

	// ReasonNetworkError indicates an HTTP request failed (connection error).
	ReasonNetworkError DiscardReason = "network_error"

	// ReasonSendError indicates HTTP returned an error status (4xx, 5xx).
	ReasonSendError DiscardReason = "send_error"

	// ReasonClientClosed indicates capture was attempted after Close.
	ReasonClientClosed DiscardReason = "client_closed"
)
