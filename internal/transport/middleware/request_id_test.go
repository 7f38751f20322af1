package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akulichev/coderecall-backend/pkg/ctxutil"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var gotID string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := ctxutil.RequestIDFromCtx(r.Context())
		if !ok {
			t.Error("expected request id in context")
		}
		gotID = id
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestID(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if gotID == "" {
		t.Error("expected a generated request id, got empty string")
	}
	if header := rec.Header().Get("X-Request-Id"); header != gotID {
		t.Errorf("response header X-Request-Id = %q, want %q", header, gotID)
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	const incoming = "client-supplied-id"

	var gotID string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestID(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", incoming)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if gotID != incoming {
		t.Errorf("context request id = %q, want %q", gotID, incoming)
	}
	if header := rec.Header().Get("X-Request-Id"); header != incoming {
		t.Errorf("response header X-Request-Id = %q, want %q", header, incoming)
	}
}
