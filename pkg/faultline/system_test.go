package faultline

import (
	"strings"
	"testing"
	"time"
)

func TestRuntimeInfo_StampsProcessState(t *testing.T) {
	r := NewRuntimeInfo()
	event := NewEvent(LevelError, "boom")

	verdict := r.Process(event)

	if verdict.Dropped() {
		t.Fatal("runtime info must never drop events")
	}

	mem, ok := event.Extra["memory_bytes"].(int64)
	if !ok || mem <= 0 {
		t.Errorf("memory_bytes = %v, want positive int64", event.Extra["memory_bytes"])
	}
	goroutines, ok := event.Extra["goroutine_count"].(int)
	if !ok || goroutines < 1 {
		t.Errorf("goroutine_count = %v, want at least 1", event.Extra["goroutine_count"])
	}
	uptime, ok := event.Extra["uptime_ms"].(int64)
	if !ok || uptime < 0 {
		t.Errorf("uptime_ms = %v, want non-negative int64", event.Extra["uptime_ms"])
	}
	version, ok := event.Extra["go_version"].(string)
	if !ok || !strings.HasPrefix(version, "go") {
		t.Errorf("go_version = %v, want runtime version string", event.Extra["go_version"])
	}
}

func TestRuntimeInfo_PreservesExistingExtra(t *testing.T) {
	r := NewRuntimeInfo()
	event := NewEvent(LevelError, "boom")
	event.Extra = map[string]any{"custom": "value"}

	r.Process(event)

	if event.Extra["custom"] != "value" {
		t.Errorf(`Extra["custom"] = %v, existing entries must survive`, event.Extra["custom"])
	}
	if _, ok := event.Extra["go_version"]; !ok {
		t.Error("runtime fields missing from pre-populated Extra")
	}
}

func TestRuntimeInfo_ClampsFutureStartTime(t *testing.T) {
	r := &RuntimeInfo{startTime: time.Now().Add(time.Hour)}
	event := NewEvent(LevelError, "boom")

	r.Process(event)

	if uptime := event.Extra["uptime_ms"].(int64); uptime != 0 {
		t.Errorf("uptime_ms = %d, want 0 for a future start time", uptime)
	}
}

func TestRuntimeInfo_Name(t *testing.T) {
	if got := NewRuntimeInfo().Name(); got != "runtime_info" {
		t.Errorf("Name() = %q, want %q", got, "runtime_info")
	}
}
