package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Learn records that the problem was learned. A record is created on
// first learn; calling Learn again later is a corrective re-learn that
// resets the review cycle to stage 0.
func (s *Service) Learn(ctx context.Context, input LearnInput) (domain.ProgressRecord, error) {
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
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.ProgressRecord{}, fmt.Errorf("load record: %w", err)
		}
		rec = domain.NewRecord(input.ProblemID)
	}

	updated := RecordLearn(rec, input.Plan, now, s.table)

	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "learn recorded",
		slog.String("problem_id", input.ProblemID),
		slog.String("plan", input.Plan),
		slog.Time("next_review", *updated.NextReviewDate),
	)

	return updated, nil
}
