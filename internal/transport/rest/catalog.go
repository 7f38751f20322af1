package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akulichev/coderecall-backend/internal/domain"
	"github.com/akulichev/coderecall-backend/internal/service/catalog"
)

type catalogService interface {
	ListCatalogs(ctx context.Context) ([]domain.CatalogRef, error)
	LoadActiveSet(ctx context.Context, slug string) (*catalog.ActiveSet, error)
	ActiveSet() *catalog.ActiveSet
	AllKnownProblems(ctx context.Context) ([]domain.TrackedProblem, error)
}

// CatalogHandler serves catalog listing and active set endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger}
}

// List handles GET /api/catalogs.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	refs, err := h.svc.ListCatalogs(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// Load handles POST /api/catalogs/{slug}/activate.
func (h *CatalogHandler) Load(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeError(w, h.log, domain.NewValidationError("slug", "must not be empty"))
		return
	}

	set, err := h.svc.LoadActiveSet(r.Context(), slug)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Active handles GET /api/catalogs/active.
func (h *CatalogHandler) Active(w http.ResponseWriter, r *http.Request) {
	set := h.svc.ActiveSet()
	if set == nil {
		writeError(w, h.log, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// AllKnown handles GET /api/problems.
func (h *CatalogHandler) AllKnown(w http.ResponseWriter, r *http.Request) {
	problems, err := h.svc.AllKnownProblems(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, problems)
}
