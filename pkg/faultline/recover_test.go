package faultline

import (
	"context"
	"errors"
	"testing"
)

func TestRecover_CapturesPanicAsFatalEvent(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, Options{Transport: transport})

	func() {
		defer Recover(context.Background(), client)
		panic("kaboom")
	}()

	envelopes := transport.getEnvelopes()
	if len(envelopes) != 1 {
		t.Fatalf("transport received %d envelopes, want 1", len(envelopes))
	}

	payload := decodePayload(t, envelopes[0])
	if payload["message"] != "kaboom" {
		t.Errorf("message = %v, want the panic value", payload["message"])
	}
	if payload["level"] != "fatal" {
		t.Errorf("level = %v, want fatal", payload["level"])
	}
	stack, _ := payload["stacktrace"].(string)
	if stack == "" {
		t.Error("panic event should carry a stack trace")
	}
}

func TestRecover_NoPanic(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, Options{Transport: transport})

	func() {
		defer Recover(context.Background(), client)
	}()

	if len(transport.getEnvelopes()) != 0 {
		t.Error("Recover captured an event without a panic")
	}
}

func TestRecover_ErrorPanicValue(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, Options{Transport: transport})

	func() {
		defer Recover(context.Background(), client)
		panic(errors.New("explicit failure"))
	}()

	payload := decodePayload(t, transport.getEnvelopes()[0])
	if payload["message"] != "explicit failure" {
		t.Errorf("message = %v, want the error text", payload["message"])
	}
}

func TestCapturePanic_UsesContextScope(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, Options{Transport: transport})

	scope := NewScope()
	scope.SetTag("worker", "batch-7")
	ctx := WithScope(context.Background(), scope)

	id := CapturePanic(ctx, client, "boom")
	if id == "" {
		t.Fatal("CapturePanic returned empty ID")
	}

	payload := decodePayload(t, transport.getEnvelopes()[0])
	tags, ok := payload["tags"].(map[string]any)
	if !ok || tags["worker"] != "batch-7" {
		t.Errorf("payload tags = %v, want the context scope's tags", payload["tags"])
	}
}

func TestCapturePanic_NilInputs(t *testing.T) {
	transport := &captureTransport{}
	client := newTestClient(t, Options{Transport: transport})

	if id := CapturePanic(context.Background(), client, nil); id != "" {
		t.Errorf("nil recovered value returned ID %q, want empty", id)
	}
	if id := CapturePanic(context.Background(), nil, "boom"); id != "" {
		t.Errorf("nil client returned ID %q, want empty", id)
	}
	if len(transport.getEnvelopes()) != 0 {
		t.Error("nil inputs must not produce envelopes")
	}
}

func TestFormatRecovered(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "<nil>"},
		{"string", "kaboom", "kaboom"},
		{"error", errors.New("wrapped failure"), "wrapped failure"},
		{"integer", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRecovered(tt.input); got != tt.want {
				t.Errorf("formatRecovered(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
