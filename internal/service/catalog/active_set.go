package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// LoadActiveSet fetches the catalog and merges it with the progress
// store, producing the active working set. The fetch failing fails the
// whole load: no partial catalog and nothing fabricated from progress
// data. On success the merged records are upserted back so cached display
// fields stay fresh; scheduling and solution fields are carried over from
// the stored copy untouched.
//
// A load started after this one wins: if the generation advanced while
// the fetch was in flight, the result is discarded and ErrSuperseded is
// returned.
func (s *Service) LoadActiveSet(ctx context.Context, slug string) (*ActiveSet, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	groups, err := s.provider.FetchCatalog(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w: %v", slug, domain.ErrCatalogUnavailable, err)
	}

	stored, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stored records: %w", err)
	}
	byID := make(map[string]domain.ProgressRecord, len(stored))
	for _, rec := range stored {
		byID[rec.ID] = domain.NormalizeRecord(rec)
	}

	set := &ActiveSet{Slug: slug, Groups: groups}
	merged := make([]domain.ProgressRecord, 0, len(stored))
	for _, group := range groups {
		for _, p := range group.Problems {
			rec, ok := byID[p.ID]
			if !ok {
				rec = domain.NewRecord(p.ID)
			}
			rec.Title = p.Title
			rec.Slug = p.Slug
			rec.Difficulty = p.Difficulty

			merged = append(merged, rec)
			set.Problems = append(set.Problems, domain.TrackedProblem{
				Problem:     p,
				GroupLabel:  group.Label,
				Record:      rec,
				InActiveSet: true,
			})
		}
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.InfoContext(ctx, "catalog load discarded", slog.String("slug", slug))
		return nil, ErrSuperseded
	}
	s.active = set
	s.mu.Unlock()

	if err := s.store.PutMany(ctx, merged); err != nil {
		return nil, fmt.Errorf("upsert active set: %w", err)
	}

	s.log.InfoContext(ctx, "active set loaded",
		slog.String("slug", slug),
		slog.Int("groups", len(groups)),
		slog.Int("problems", len(set.Problems)),
	)

	return set, nil
}
