// metrics.go provides Prometheus instrumentation for the capture pipeline.

package faultline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks capture pipeline and transport activity. A nil *Metrics is
// valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	captured     prometheus.Counter
	dropped      *prometheus.CounterVec
	sent         prometheus.Counter
	queueDepth   prometheus.Gauge
	sendDuration prometheus.Histogram
}

// NewMetrics creates pipeline metrics registered against reg. Pass
// prometheus.DefaultRegisterer to expose them through the default handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		captured: factory.NewCounter(prometheus.CounterOpts{
			Name: "faultline_events_captured_total",
			Help: "Total number of events handed to the transport",
		}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faultline_events_dropped_total",
			Help: "Total number of events dropped before delivery, by reason",
		}, []string{"reason"}),
		sent: factory.NewCounter(prometheus.CounterOpts{
			Name: "faultline_envelopes_sent_total",
			Help: "Total number of envelopes accepted by the ingestion endpoint",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "faultline_transport_queue_depth",
			Help: "Number of envelopes waiting in the transport queue",
		}),
		sendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faultline_send_duration_seconds",
			Help:    "Envelope delivery duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordCaptured records an event handed to the transport.
func (m *Metrics) RecordCaptured() {
	if m == nil {
		return
	}
	m.captured.Inc()
}

// RecordDropped records an event discarded for the given reason.
func (m *Metrics) RecordDropped(reason DiscardReason) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(string(reason)).Inc()
}

// RecordSent records an envelope accepted by the ingestion endpoint.
func (m *Metrics) RecordSent() {
	if m == nil {
		return
	}
	m.sent.Inc()
}

// RecordQueueDepth records the current transport queue depth.
func (m *Metrics) RecordQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// RecordSendDuration records how long one envelope delivery took.
func (m *Metrics) RecordSendDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.sendDuration.Observe(d.Seconds())
}
