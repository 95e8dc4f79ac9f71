// transport.go defines the Transport interface and the default asynchronous
// HTTP dispatcher that delivers envelopes to the DSN's ingestion endpoint.

package faultline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// protocolVersion is the ingestion protocol version announced in the
// authentication header.
const protocolVersion = 6

// Transport delivers encoded envelopes to their destination.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Send dispatches one encoded envelope. The default transport enqueues
	// and returns immediately; delivery happens in the background.
	Send(ctx context.Context, envelope []byte) error

	// Flush blocks until every envelope accepted so far has been delivered,
	// or the context expires.
	Flush(ctx context.Context) error

	// Close releases resources held by the transport.
	// After Close is called, Send and Flush return ErrTransportClosed.
	Close() error
}

// HTTPTransportOption configures the HTTP transport.
type HTTPTransportOption func(*httpTransportConfig)

type httpTransportConfig struct {
	queueSize  int
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
	onDropped  func(count int)
}

// WithQueueSize sets the maximum number of queued envelopes (default: 1000).
func WithQueueSize(size int) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithHTTPClient sets the HTTP client used for deliveries (default: a client
// with a 30 second timeout).
func WithHTTPClient(client *http.Client) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger for delivery failures and drop reports.
func WithLogger(logger *slog.Logger) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics attaches pipeline metrics to the transport.
func WithMetrics(metrics *Metrics) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		c.metrics = metrics
	}
}

// WithOnDropped sets a callback invoked when envelopes are dropped due to
// queue overflow.
func WithOnDropped(fn func(count int)) HTTPTransportOption {
	return func(c *httpTransportConfig) {
		c.onDropped = fn
	}
}

// HTTPTransport posts envelopes to a DSN's envelope endpoint from a single
// background worker fed by a bounded queue. Send returns immediately; when
// the queue is full, the oldest envelope is dropped to make room. Delivery
// failures are logged and counted, never retried.
type HTTPTransport struct {
	dsn        *DSN
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
	onDropped  func(count int)

	queue     chan []byte
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	// mu guards pending, waiters, and closed. pending counts envelopes
	// accepted by Send but not yet delivered, dropped, or abandoned;
	// waiters are closed when pending reaches zero.
	mu      sync.Mutex
	pending int
	waiters []chan struct{}
	closed  bool

	// now stamps the authentication header; replaced in tests.
	now func() time.Time
}

// NewHTTPTransport creates the default transport for the given DSN and
// starts its delivery worker.
func NewHTTPTransport(dsn *DSN, opts ...HTTPTransportOption) *HTTPTransport {
	cfg := &httpTransportConfig{
		queueSize:  1000,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &HTTPTransport{
		dsn:        dsn,
		httpClient: cfg.httpClient,
		logger:     cfg.logger,
		metrics:    cfg.metrics,
		onDropped:  cfg.onDropped,
		queue:      make(chan []byte, cfg.queueSize),
		done:       make(chan struct{}),
		now:        time.Now,
	}

	t.wg.Add(1)
	go t.worker()

	return t
}

// worker delivers queued envelopes until Close. Envelopes still queued when
// done is signaled are abandoned by Close, not drained.
func (t *HTTPTransport) worker() {
	defer t.wg.Done()
	for {
		select {
		case envelope := <-t.queue:
			t.metrics.RecordQueueDepth(len(t.queue))
			t.deliver(envelope)
			t.completeOne()
		case <-t.done:
			return
		}
	}
}

// deliver posts one envelope to the envelope endpoint. Failures are logged
// and counted; a non-2xx response is observed but is not a local error.
func (t *HTTPTransport) deliver(envelope []byte) {
	start := time.Now()

	req, err := http.NewRequest(http.MethodPost, t.dsn.EnvelopeURL(), bytes.NewReader(envelope))
	if err != nil {
		t.logger.Error("building envelope request", "url", t.dsn.EnvelopeURL(), "error", err)
		t.metrics.RecordDropped(ReasonNetworkError)
		return
	}
	req.Header.Set("X-Sentry-Auth", buildAuthHeader(t.dsn.PublicKey(), t.now()))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Error("envelope delivery failed", "url", t.dsn.EnvelopeURL(), "error", err)
		t.metrics.RecordDropped(ReasonNetworkError)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	t.metrics.RecordSendDuration(time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Warn("ingestion endpoint rejected envelope",
			"url", t.dsn.EnvelopeURL(), "status", resp.StatusCode)
		t.metrics.RecordDropped(ReasonSendError)
		return
	}

	t.metrics.RecordSent()
}

// Send enqueues an envelope for background delivery.
// Returns immediately. If the queue is full, drops the oldest envelope.
func (t *HTTPTransport) Send(ctx context.Context, envelope []byte) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTransportClosed
	}
	t.pending++
	t.mu.Unlock()

	select {
	case t.queue <- envelope:
		t.metrics.RecordQueueDepth(len(t.queue))
		return nil
	default:
		t.dropOldestAndEnqueue(envelope)
		return nil
	}
}

// dropOldestAndEnqueue drops the oldest queued envelope and enqueues the new one.
func (t *HTTPTransport) dropOldestAndEnqueue(envelope []byte) {
	// Try to read (drop) one envelope from the queue
	select {
	case <-t.queue:
		t.reportDropped(1)
	default:
		// Queue was emptied by the worker, try again
	}

	// Now try to enqueue again
	select {
	case t.queue <- envelope:
		t.metrics.RecordQueueDepth(len(t.queue))
	default:
		// Still full, just drop the new envelope
		t.reportDropped(1)
	}
}

// reportDropped accounts for envelopes lost to queue overflow.
func (t *HTTPTransport) reportDropped(count int) {
	t.logger.Warn("transport queue full, dropping envelopes", "count", count)
	for i := 0; i < count; i++ {
		t.metrics.RecordDropped(ReasonQueueOverflow)
		t.completeOne()
	}
	if t.onDropped != nil {
		t.onDropped(count)
	}
}

// completeOne retires one pending envelope and wakes flushers when none remain.
func (t *HTTPTransport) completeOne() {
	t.mu.Lock()
	t.pending--
	if t.pending <= 0 {
		t.pending = 0
		for _, waiter := range t.waiters {
			close(waiter)
		}
		t.waiters = nil
	}
	t.mu.Unlock()
}

// Flush blocks until every envelope accepted so far has been delivered,
// dropped, or abandoned. When ctx expires first, Flush returns a
// *FlushTimeoutError carrying the number of envelopes still pending.
func (t *HTTPTransport) Flush(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTransportClosed
	}
	if t.pending == 0 {
		t.mu.Unlock()
		return nil
	}
	waiter := make(chan struct{})
	t.waiters = append(t.waiters, waiter)
	t.mu.Unlock()

	select {
	case <-waiter:
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return ErrTransportClosed
		}
		return nil
	case <-ctx.Done():
		t.mu.Lock()
		pending := t.pending
		t.mu.Unlock()
		return &FlushTimeoutError{Pending: pending}
	}
}

// Close stops the worker and abandons undelivered envelopes, reporting how
// many were lost. Callers wanting delivery should Flush first; Client.Close
// does a bounded flush before closing.
func (t *HTTPTransport) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()

		close(t.done)
		t.wg.Wait()

		abandoned := 0
	drain:
		for {
			select {
			case <-t.queue:
				abandoned++
			default:
				break drain
			}
		}
		if abandoned > 0 {
			t.logger.Warn("closing with undelivered envelopes", "abandoned", abandoned)
			for i := 0; i < abandoned; i++ {
				t.metrics.RecordDropped(ReasonClientClosed)
			}
		}
		t.metrics.RecordQueueDepth(0)

		// Wake flushers; they observe the closed state and report it.
		t.mu.Lock()
		t.pending = 0
		for _, waiter := range t.waiters {
			close(waiter)
		}
		t.waiters = nil
		t.mu.Unlock()
	})

	return nil
}

// buildAuthHeader renders the ingestion authentication header:
//
//	Sentry sentry_version=6,sentry_client=<name>/<version>,sentry_key=<key>,sentry_timestamp=<unixSeconds>
func buildAuthHeader(publicKey string, now time.Time) string {
	return fmt.Sprintf("Sentry sentry_version=%d,sentry_client=%s/%s,sentry_key=%s,sentry_timestamp=%d",
		protocolVersion, sdkName, sdkVersion, publicKey, now.Unix())
}
