package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/akulichev/coderecall-backend/internal/domain"
	"github.com/akulichev/coderecall-backend/internal/service/catalog"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors to HTTP status codes. Not-found and
// invalid-state are distinct outcomes; a failed upstream catalog fetch is
// a bad gateway, not our fault.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		fields := make([]map[string]string, 0, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
	case errors.Is(err, domain.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid state transition"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "catalog unavailable"})
	case errors.Is(err, catalog.ErrSuperseded):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "superseded by a newer catalog load"})
	default:
		log.Error("internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
