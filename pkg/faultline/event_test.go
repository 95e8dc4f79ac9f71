package faultline

import (
	"testing"
	"time"
)

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewEvent(LevelWarning, "slow query")
	after := time.Now().UTC()

	if event.ID == "" {
		t.Error("NewEvent should assign an ID")
	}
	if event.Level != LevelWarning {
		t.Errorf("Level = %q, want %q", event.Level, LevelWarning)
	}
	if event.Message != "slow query" {
		t.Errorf("Message = %q, want %q", event.Message, "slow query")
	}
	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("Timestamp = %v, want between %v and %v", event.Timestamp, before, after)
	}
	if event.Tags != nil {
		t.Error("Tags should start nil so scope tags can be adopted wholesale")
	}
}

func TestNewEventID_UniqueAndUUIDShaped(t *testing.T) {
	a := NewEventID()
	b := NewEventID()

	if a == b {
		t.Error("successive IDs should differ")
	}
	if len(a) != 36 {
		t.Errorf("ID length = %d, want 36 (UUID string form)", len(a))
	}
}

func TestLevelConstants(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarning, "warning"},
		{LevelError, "error"},
		{LevelFatal, "fatal"},
	}

	for _, tt := range tests {
		if string(tt.level) != tt.want {
			t.Errorf("Level constant = %q, want %q", tt.level, tt.want)
		}
	}
}
