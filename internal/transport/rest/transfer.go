package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/akulichev/coderecall-backend/internal/domain"
	"github.com/akulichev/coderecall-backend/internal/service/transfer"
)

// maxImportBytes caps the accepted import document size.
const maxImportBytes = 32 << 20

type transferService interface {
	Export(ctx context.Context, scope transfer.Scope) (*transfer.Document, error)
	Import(ctx context.Context, data []byte) (*transfer.ImportResult, error)
}

// TransferHandler serves the bulk export and import endpoints.
type TransferHandler struct {
	svc transferService
	log *slog.Logger
}

// NewTransferHandler creates a TransferHandler.
func NewTransferHandler(svc transferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{svc: svc, log: logger}
}

// Export handles GET /api/transfer/export?scope=FULL.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	scope := transfer.Scope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = transfer.ScopeFull
	}
	if !scope.IsValid() {
		writeError(w, h.log, domain.NewValidationError("scope", "must be one of FULL, RECORDS, SOLUTIONS"))
		return
	}

	doc, err := h.svc.Export(r.Context(), scope)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Import handles POST /api/transfer/import.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, h.log, domain.NewValidationError("body", "failed to read request body"))
		return
	}

	result, err := h.svc.Import(r.Context(), data)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
