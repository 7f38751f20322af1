package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// AllKnownProblems enumerates every problem the store knows about: the
// active working set first (in catalog order), then records learned or
// reviewed under previously selected catalogs, rendered from their cached
// title/difficulty/slug. A record without a currently loaded catalog
// entry is never dropped.
func (s *Service) AllKnownProblems(ctx context.Context) ([]domain.TrackedProblem, error) {
	stored, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stored records: %w", err)
	}
	byID := make(map[string]domain.ProgressRecord, len(stored))
	for _, rec := range stored {
		byID[rec.ID] = domain.NormalizeRecord(rec)
	}

	active := s.ActiveSet()

	var out []domain.TrackedProblem
	inActive := map[string]bool{}
	if active != nil {
		for _, tp := range active.Problems {
			id := tp.Problem.ID
			inActive[id] = true
			// Prefer the store's current record over the snapshot taken
			// at load time; the scheduler may have moved on since.
			if rec, ok := byID[id]; ok {
				tp.Record = rec
			}
			out = append(out, tp)
		}
	}

	var rest []domain.TrackedProblem
	for id, rec := range byID {
		if inActive[id] {
			continue
		}
		rest = append(rest, domain.TrackedProblem{
			Problem: domain.CatalogProblem{
				ID:         id,
				Title:      rec.Title,
				Slug:       rec.Slug,
				Difficulty: rec.Difficulty,
			},
			Record:      rec,
			InActiveSet: false,
		})
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].Problem.ID < rest[j].Problem.ID
	})

	return append(out, rest...), nil
}
