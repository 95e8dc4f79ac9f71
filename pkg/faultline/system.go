// system.go enriches events with process state at capture time.

package faultline

import (
	"runtime"
	"time"
)

// RuntimeInfo is a Processor that stamps process state into the event's
// Extra map: heap allocation, goroutine count, process uptime, and the Go
// runtime version. It never drops events.
type RuntimeInfo struct {
	startTime time.Time
}

// NewRuntimeInfo creates the processor. Uptime is measured from the moment
// of construction, so build it once at process start.
func NewRuntimeInfo() *RuntimeInfo {
	return &RuntimeInfo{startTime: time.Now()}
}

// Name identifies the processor in logs and drop accounting.
func (r *RuntimeInfo) Name() string {
	return "runtime_info"
}

// Process stamps process state into Extra and keeps the event.
func (r *RuntimeInfo) Process(event *Event) Verdict {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	uptimeMs := time.Since(r.startTime).Milliseconds()
	if uptimeMs < 0 {
		uptimeMs = 0 // Clamp to 0 if start time is in the future
	}

	if event.Extra == nil {
		event.Extra = make(map[string]any, 4)
	}
	event.Extra["memory_bytes"] = int64(memStats.Alloc)
	event.Extra["goroutine_count"] = runtime.NumGoroutine()
	event.Extra["uptime_ms"] = uptimeMs
	event.Extra["go_version"] = runtime.Version()

	return Keep(event)
}
