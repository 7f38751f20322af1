package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// ErrSuperseded is returned when a finished catalog load is discarded
// because a newer load was started while its fetch was in flight.
var ErrSuperseded = errors.New("catalog load superseded")

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type catalogProvider interface {
	FetchCatalog(ctx context.Context, slug string) ([]domain.CatalogGroup, error)
	ListCatalogs(ctx context.Context) ([]domain.CatalogRef, error)
}

type progressStore interface {
	GetAll(ctx context.Context) ([]domain.ProgressRecord, error)
	PutMany(ctx context.Context, recs []domain.ProgressRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// ActiveSet is the merged working set for the currently selected catalog.
type ActiveSet struct {
	Slug     string                  `json:"slug"`
	Groups   []domain.CatalogGroup   `json:"groups"`
	Problems []domain.TrackedProblem `json:"problems"`
}

// Service reconciles the read-only catalog feed with the locally owned
// progress store. It keeps the last successfully loaded active set and a
// generation counter so that a stale in-flight load can never overwrite
// the result of a newer one.
type Service struct {
	log      *slog.Logger
	provider catalogProvider
	store    progressStore

	mu     sync.Mutex
	gen    uint64
	active *ActiveSet
}

// NewService creates a new catalog service.
func NewService(logger *slog.Logger, provider catalogProvider, store progressStore) *Service {
	return &Service{
		log:      logger.With("service", "catalog"),
		provider: provider,
		store:    store,
	}
}

// ListCatalogs returns the provider's catalog listing. Display names are
// resolved by the localization layer keyed by slug, not here.
func (s *Service) ListCatalogs(ctx context.Context) ([]domain.CatalogRef, error) {
	refs, err := s.provider.ListCatalogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w: %v", domain.ErrCatalogUnavailable, err)
	}
	return refs, nil
}

// ActiveSet returns the last successfully loaded active set, or nil when
// no catalog has been loaded yet.
func (s *Service) ActiveSet() *ActiveSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
