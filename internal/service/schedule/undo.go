package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Undo removes a single history event. Undoing the sole learn event
// cascades to a full reset of the schedule (solutions survive). A date
// with no matching event is domain.ErrEventNotFound and nothing is
// written.
func (s *Service) Undo(ctx context.Context, input UndoInput) (domain.ProgressRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.ProgressRecord{}, err
	}

	unlock := s.lockProblem(input.ProblemID)
	defer unlock()

	rec, err := s.load(ctx, input.ProblemID)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	updated, err := UndoEvent(rec, input.Kind, input.Date, s.table)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "event undone",
		slog.String("problem_id", input.ProblemID),
		slog.String("kind", input.Kind.String()),
		slog.Time("date", input.Date),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// Retime moves a history event to a new timestamp and reschedules from
// the latest event. The review cycle position is unaffected.
func (s *Service) Retime(ctx context.Context, input RetimeInput) (domain.ProgressRecord, error) {
	if err := input.Validate(); err != nil {
		return domain.ProgressRecord{}, err
	}

	unlock := s.lockProblem(input.ProblemID)
	defer unlock()

	rec, err := s.load(ctx, input.ProblemID)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	updated, err := RetimeEvent(rec, input.Kind, input.OldDate, input.NewDate, s.table)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	if err := s.store.Put(ctx, updated); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("put record: %w", err)
	}

	s.log.InfoContext(ctx, "event retimed",
		slog.String("problem_id", input.ProblemID),
		slog.String("kind", input.Kind.String()),
		slog.Time("old_date", input.OldDate),
		slog.Time("new_date", input.NewDate),
	)

	return updated, nil
}
