// client.go provides the Client, the entry point tying the capture pipeline
// to a transport.

package faultline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// sdkName identifies this client in envelope and authentication headers.
	sdkName = "faultline-go"

	// sdkVersion is the client version reported with every envelope.
	sdkVersion = "0.1.0"

	// defaultFlushTimeout bounds the drain performed by Close.
	defaultFlushTimeout = 2 * time.Second
)

// Options configures a Client. Options are read once during construction and
// never consulted again, so mutating an Options value after NewClient has no
// effect on the client built from it.
type Options struct {
	// DSN identifies the ingestion endpoint. Required; an empty or invalid
	// DSN makes NewClient fail with a typed error.
	DSN string

	// BeforeSend, when set, runs after all scope processors as the final
	// filter. Its drop skips envelope encoding and dispatch entirely.
	BeforeSend Processor

	// Transport overrides the default HTTP transport. Useful for fan-out,
	// development output, or disabling delivery in tests.
	Transport Transport

	// Release identifies the application build; stamped on events that do
	// not set their own.
	Release string

	// Environment names the deployment environment; stamped on events that
	// do not set their own.
	Environment string

	// ServerName overrides the reporting host name (default: os.Hostname).
	ServerName string

	// Logger receives diagnostic output (default: slog.Default()).
	Logger *slog.Logger

	// Metrics, when set, records pipeline and transport instrumentation.
	Metrics *Metrics

	// HTTPClient overrides the HTTP client of the default transport.
	HTTPClient *http.Client

	// QueueSize overrides the default transport's queue capacity.
	QueueSize int

	// FlushTimeout bounds the drain performed by Close (default: 2s).
	FlushTimeout time.Duration
}

// Client captures events and dispatches them through its transport.
//
// A client is ready as soon as NewClient returns and stays usable until
// Close. Capturing on a closed client is a defined no-op: the event is
// counted and logged, and the empty EventID is returned.
type Client struct {
	dsn          *DSN
	transport    Transport
	beforeSend   Processor
	logger       *slog.Logger
	metrics      *Metrics
	release      string
	environment  string
	serverName   string
	flushTimeout time.Duration

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewClient validates the options, parses the DSN, and starts the transport.
// The DSN is parsed exactly once; a failure here means no client exists.
func NewClient(opts Options) (*Client, error) {
	dsn, err := ParseDSN(opts.DSN)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serverName := opts.ServerName
	if serverName == "" {
		serverName, _ = os.Hostname() // empty server name is acceptable
	}

	flushTimeout := opts.FlushTimeout
	if flushTimeout <= 0 {
		flushTimeout = defaultFlushTimeout
	}

	transport := opts.Transport
	if transport == nil {
		topts := []HTTPTransportOption{
			WithLogger(logger),
			WithMetrics(opts.Metrics),
		}
		if opts.HTTPClient != nil {
			topts = append(topts, WithHTTPClient(opts.HTTPClient))
		}
		if opts.QueueSize > 0 {
			topts = append(topts, WithQueueSize(opts.QueueSize))
		}
		transport = NewHTTPTransport(dsn, topts...)
	}

	return &Client{
		dsn:          dsn,
		transport:    transport,
		beforeSend:   opts.BeforeSend,
		logger:       logger,
		metrics:      opts.Metrics,
		release:      opts.Release,
		environment:  opts.Environment,
		serverName:   serverName,
		flushTimeout: flushTimeout,
	}, nil
}

// DSN returns the parsed connection descriptor the client was built with.
func (c *Client) DSN() *DSN {
	return c.dsn
}

// CaptureEvent runs the event through the capture pipeline: scope tag merge,
// the scope's processor chain, the send filter, envelope encoding, and
// dispatch. It returns the event's ID once the transport has accepted the
// envelope, or the empty EventID when the event was dropped at any stage.
// A non-empty return means accepted for delivery, not delivered; the send
// itself happens asynchronously.
func (c *Client) CaptureEvent(ctx context.Context, event *Event, scope *Scope) EventID {
	if event == nil {
		return ""
	}

	if c.closed.Load() {
		c.logger.Warn("capture after close, event discarded", "message", event.Message)
		c.metrics.RecordDropped(ReasonClientClosed)
		return ""
	}

	c.prepare(event)

	mergeScopeTags(event, scope)

	if scope != nil && len(scope.Processors) > 0 {
		kept, dropper, ok := runChain(event, scope.Processors)
		if !ok {
			c.logger.Debug("event dropped by processor", "processor", dropper, "event_id", event.ID)
			c.metrics.RecordDropped(ReasonEventProcessor)
			return ""
		}
		event = kept
	}

	if c.beforeSend != nil {
		verdict := c.beforeSend.Process(event)
		if verdict.Dropped() || verdict.Event() == nil {
			c.logger.Debug("event dropped by send filter", "filter", c.beforeSend.Name(), "event_id", event.ID)
			c.metrics.RecordDropped(ReasonBeforeSend)
			return ""
		}
		event = verdict.Event()
	}

	envelope, err := EncodeEnvelope(event)
	if err != nil {
		c.logger.Error("encoding envelope", "event_id", event.ID, "error", err)
		c.metrics.RecordDropped(ReasonEncodingError)
		return ""
	}

	if err := c.transport.Send(ctx, envelope); err != nil {
		c.logger.Error("dispatching envelope", "event_id", event.ID, "error", err)
		if errors.Is(err, ErrTransportClosed) {
			c.metrics.RecordDropped(ReasonClientClosed)
		} else {
			c.metrics.RecordDropped(ReasonSendError)
		}
		return ""
	}

	c.metrics.RecordCaptured()
	return event.ID
}

// CaptureMessage builds an informational event from message and captures it.
func (c *Client) CaptureMessage(ctx context.Context, message string, scope *Scope) EventID {
	return c.CaptureEvent(ctx, NewEvent(LevelInfo, message), scope)
}

// CaptureError builds an error-level event from err and captures it.
// A nil error is ignored.
func (c *Client) CaptureError(ctx context.Context, err error, scope *Scope) EventID {
	if err == nil {
		return ""
	}
	return c.CaptureEvent(ctx, NewEvent(LevelError, err.Error()), scope)
}

// Flush blocks until the transport has delivered everything accepted so far
// or ctx expires.
func (c *Client) Flush(ctx context.Context) error {
	return c.transport.Flush(ctx)
}

// Close drains the transport for at most FlushTimeout, reports anything
// still pending, and releases transport resources. Close is idempotent;
// capture calls after Close are no-ops.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		ctx, cancel := context.WithTimeout(context.Background(), c.flushTimeout)
		defer cancel()

		if err := c.transport.Flush(ctx); err != nil {
			var timeout *FlushTimeoutError
			if errors.As(err, &timeout) {
				c.logger.Warn("close abandoning pending envelopes", "pending", timeout.Pending)
			} else {
				c.logger.Warn("flush before close failed", "error", err)
			}
		}

		c.closeErr = c.transport.Close()
	})
	return c.closeErr
}

// prepare backfills identity fields and stamps client-level attributes.
// Values already on the event always win over client defaults.
func (c *Client) prepare(event *Event) {
	if event.ID == "" {
		event.ID = NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Level == "" {
		event.Level = LevelError
	}
	if event.Release == "" {
		event.Release = c.release
	}
	if event.Environment == "" {
		event.Environment = c.environment
	}
	if event.ServerName == "" {
		event.ServerName = c.serverName
	}
}
