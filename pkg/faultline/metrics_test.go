package faultline

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordCaptured()
	m.RecordDropped(ReasonBeforeSend)
	m.RecordSent()
	m.RecordQueueDepth(5)
	m.RecordSendDuration(10 * time.Millisecond)
}

func TestMetrics_RecordsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordCaptured()
	m.RecordCaptured()
	m.RecordDropped(ReasonBeforeSend)
	m.RecordDropped(ReasonQueueOverflow)
	m.RecordDropped(ReasonQueueOverflow)
	m.RecordSent()
	m.RecordQueueDepth(7)

	if got := testutil.ToFloat64(m.captured); got != 2 {
		t.Errorf("events_captured_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.dropped.WithLabelValues(string(ReasonBeforeSend))); got != 1 {
		t.Errorf("events_dropped_total{reason=before_send} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.dropped.WithLabelValues(string(ReasonQueueOverflow))); got != 2 {
		t.Errorf("events_dropped_total{reason=queue_overflow} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.sent); got != 1 {
		t.Errorf("envelopes_sent_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.queueDepth); got != 7 {
		t.Errorf("transport_queue_depth = %v, want 7", got)
	}
}

func TestMetrics_SendDurationObserved(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordSendDuration(25 * time.Millisecond)

	if got := testutil.CollectAndCount(m.sendDuration); got != 1 {
		t.Errorf("send duration collected %d series, want 1", got)
	}
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Two instances on distinct registries must not collide.
	a := NewMetrics(prometheus.NewRegistry())
	b := NewMetrics(prometheus.NewRegistry())

	a.RecordCaptured()

	if got := testutil.ToFloat64(b.captured); got != 0 {
		t.Errorf("second registry saw %v captures, want 0", got)
	}
}
