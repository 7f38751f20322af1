package transfer

import (
	"context"
	"log/slog"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressStore interface {
	GetAll(ctx context.Context) ([]domain.ProgressRecord, error)
	PutMany(ctx context.Context, recs []domain.ProgressRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the bulk export/import contract. Import validates
// the whole document before the first write; a malformed document leaves
// the store untouched.
type Service struct {
	log   *slog.Logger
	store progressStore
}

// NewService creates a new transfer service.
func NewService(logger *slog.Logger, store progressStore) *Service {
	return &Service{
		log:   logger.With("service", "transfer"),
		store: store,
	}
}
