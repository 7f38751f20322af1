package rest

import (
	"log/slog"
	"net/http"

	"github.com/akulichev/coderecall-backend/internal/config"
	"github.com/akulichev/coderecall-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Progress *ProgressHandler
	Catalog  *CatalogHandler
	Stats    *StatsHandler
	Transfer *TransferHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP routing table. API routes share one middleware
// chain; health probes stay outside it so a broken middleware never hides
// a live process.
func NewRouter(h Handlers, logger *slog.Logger, corsCfg config.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := http.NewServeMux()

	api.HandleFunc("GET /api/catalogs", h.Catalog.List)
	api.HandleFunc("POST /api/catalogs/{slug}/activate", h.Catalog.Load)
	api.HandleFunc("GET /api/catalogs/active", h.Catalog.Active)
	api.HandleFunc("GET /api/problems", h.Catalog.AllKnown)

	api.HandleFunc("POST /api/problems/{id}/learn", h.Progress.Learn)
	api.HandleFunc("POST /api/problems/{id}/review", h.Progress.Review)
	api.HandleFunc("POST /api/problems/{id}/undo", h.Progress.Undo)
	api.HandleFunc("POST /api/problems/{id}/retime", h.Progress.Retime)
	api.HandleFunc("POST /api/progress/clear", h.Progress.Clear)
	api.HandleFunc("PUT /api/problems/{id}/solutions", h.Progress.UpsertSolution)
	api.HandleFunc("DELETE /api/problems/{id}/solutions/{solutionId}", h.Progress.DeleteSolution)

	api.HandleFunc("GET /api/stats/overview", h.Stats.Overview)

	api.HandleFunc("GET /api/transfer/export", h.Transfer.Export)
	api.HandleFunc("POST /api/transfer/import", h.Transfer.Import)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(corsCfg),
	)

	mux.Handle("/api/", chain(api))

	return mux
}
