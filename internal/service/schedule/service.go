package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressStore interface {
	Get(ctx context.Context, id string) (domain.ProgressRecord, error)
	GetAll(ctx context.Context) ([]domain.ProgressRecord, error)
	Put(ctx context.Context, rec domain.ProgressRecord) error
	ReplaceAll(ctx context.Context, recs []domain.ProgressRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service applies scheduling operations to progress records and persists
// the results. Operations on the same problem ID are serialized with a
// per-ID mutex: the engine's read-modify-write sequences must never
// interleave for one record. A failed store write is surfaced to the
// caller and the write is not assumed to have applied.
type Service struct {
	store progressStore
	log   *slog.Logger
	table domain.IntervalTable

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new schedule service.
func NewService(logger *slog.Logger, store progressStore, table domain.IntervalTable) (*Service, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid interval table: %w", err)
	}
	return &Service{
		store: store,
		log:   logger.With("service", "schedule"),
		table: table,
		locks: map[string]*sync.Mutex{},
	}, nil
}

// IntervalTable returns the deployed review cadence.
func (s *Service) IntervalTable() domain.IntervalTable {
	return append(domain.IntervalTable(nil), s.table...)
}

// lockProblem acquires the mutex for one problem ID, creating it on first
// use. The returned func releases it.
func (s *Service) lockProblem(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// load fetches and normalizes one record. Missing records surface as
// domain.ErrNotFound.
func (s *Service) load(ctx context.Context, id string) (domain.ProgressRecord, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	return domain.NormalizeRecord(rec), nil
}
