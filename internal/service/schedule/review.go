package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Review records a completed review and advances the schedule. Reviewing
// a problem that has no record is domain.ErrNotFound; reviewing one that
// is not LEARNING is domain.ErrInvalidState. Both leave the store
// untouched.
func (s *Service) Review(ctx context.Context, input ReviewInput) (domain.ProgressRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.ProgressRecord{}, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	unlock := s.lockProblem(input.ProblemID)
	defer unlock()

	rec, err := s.load(ctx, input.ProblemID)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	updated, err := RecordReview(rec, input.Plan, now, s.table)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "review recorded",
		slog.String("problem_id", input.ProblemID),
		slog.String("status", updated.Status.String()),
		slog.Int("cycle_index", updated.ReviewCycleIndex),
	)

	return updated, nil
}
