package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akulichev/coderecall-backend/internal/domain"
	"github.com/akulichev/coderecall-backend/internal/service/catalog"
)

func TestWriteError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("plan", "required"), http.StatusBadRequest},
		{"event not found", fmt.Errorf("undo: %w", domain.ErrEventNotFound), http.StatusNotFound},
		{"record not found", fmt.Errorf("record x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"invalid state", domain.ErrInvalidState, http.StatusConflict},
		{"catalog unavailable", fmt.Errorf("fetch: %w", domain.ErrCatalogUnavailable), http.StatusBadGateway},
		{"superseded", catalog.ErrSuperseded, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(rec, slog.Default(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Error == "" {
				t.Error("expected non-empty error message")
			}
		})
	}
}

func TestWriteError_ValidationIncludesFields(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, slog.Default(), domain.NewValidationErrors([]domain.FieldError{
		{Field: "old_date", Message: "required"},
		{Field: "new_date", Message: "required"},
	}))

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(body.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(body.Fields))
	}
	if body.Fields[0]["field"] != "old_date" {
		t.Errorf("expected field 'old_date', got %q", body.Fields[0]["field"])
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, slog.Default(), errors.New("pq: password authentication failed"))

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal details must not leak, got %q", body.Error)
	}
}
