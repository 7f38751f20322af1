package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc-123")

	id, ok := RequestIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected request id to be present")
	}
	if id != "abc-123" {
		t.Errorf("request id = %q, want %q", id, "abc-123")
	}
}

func TestRequestID_Missing(t *testing.T) {
	id, ok := RequestIDFromCtx(context.Background())
	if ok {
		t.Errorf("expected no request id, got %q", id)
	}
}
