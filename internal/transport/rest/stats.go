package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/akulichev/coderecall-backend/internal/service/stats"
)

type statsService interface {
	Overview(ctx context.Context, now time.Time) (stats.Overview, error)
}

// StatsHandler serves the history and achievements overview.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger}
}

// Overview handles GET /api/stats/overview.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context(), time.Now())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
