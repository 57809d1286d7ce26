package tracing

import (
	"context"
	"testing"
)

func TestDisabledWhenEndpointAbsent(t *testing.T) {
	tp, shutdown, err := NewProvider(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if tp == nil {
		t.Fatal("expected a provider even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("disabled shutdown returned %v", err)
	}

	// The no-op provider must still hand out usable tracers.
	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()
}

func TestDisabledWhenEndpointBlank(t *testing.T) {
	tp, _, err := NewProvider(context.Background(), Config{Endpoint: "   "})
	if err != nil {
		t.Fatal(err)
	}
	if tp == nil {
		t.Fatal("expected a provider")
	}
}
