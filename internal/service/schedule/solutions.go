package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// UpsertSolution creates or updates one solution entry on a record.
// Solutions are orthogonal to scheduling, but they live on the same
// record, so writes go through the same per-problem lock. Upserting onto
// a problem with no record materializes an unstarted shell.
func (s *Service) UpsertSolution(ctx context.Context, input SolutionInput) (domain.ProgressRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.ProgressRecord{}, err
	}

	unlock := s.lockProblem(input.ProblemID)
	defer unlock()

	rec, err := s.load(ctx, input.ProblemID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.ProgressRecord{}, fmt.Errorf("load record: %w", err)
		}
		rec = domain.NewRecord(input.ProblemID)
	}

	now := time.Now().UTC()
	sol := domain.Solution{
		ID:        input.SolutionID,
		Title:     input.Title,
		Notes:     input.Notes,
		Link:      input.Link,
		Tags:      input.Tags,
		Codes:     input.Codes,
		UpdatedAt: now,
	}

	if sol.ID == "" {
		sol.ID = uuid.New().String()
		sol.CreatedAt = now
		rec.Solutions = append(rec.Solutions, sol)
	} else {
		idx := -1
		for i, existing := range rec.Solutions {
			if existing.ID == sol.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.ProgressRecord{}, fmt.Errorf("solution %s: %w", sol.ID, domain.ErrNotFound)
		}
		sol.CreatedAt = rec.Solutions[idx].CreatedAt
		rec.Solutions[idx] = sol
	}

	updated := domain.NormalizeRecord(rec)
	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "solution upserted",
		slog.String("problem_id", input.ProblemID),
		slog.String("solution_id", sol.ID),
	)

	return updated, nil
}

// DeleteSolution removes one solution entry from a record.
func (s *Service) DeleteSolution(ctx context.Context, problemID, solutionID string) (domain.ProgressRecord, error) {
	if problemID == "" {
		return domain.ProgressRecord{}, domain.NewValidationError("problem_id", "required")
	}
	if solutionID == "" {
		return domain.ProgressRecord{}, domain.NewValidationError("solution_id", "required")
	}

	unlock := s.lockProblem(problemID)
	defer unlock()

	rec, err := s.load(ctx, problemID)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	idx := -1
	for i, sol := range rec.Solutions {
		if sol.ID == solutionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ProgressRecord{}, fmt.Errorf("solution %s: %w", solutionID, domain.ErrNotFound)
	}
	rec.Solutions = append(rec.Solutions[:idx], rec.Solutions[idx+1:]...)

	updated := domain.NormalizeRecord(rec)
	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "solution deleted",
		slog.String("problem_id", problemID),
		slog.String("solution_id", solutionID),
	)

	return updated, nil
}
