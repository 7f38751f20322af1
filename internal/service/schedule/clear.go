package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// ClearProgress resets the scheduling fields of every record. Solutions
// and cached display metadata are preserved: the reset record stays in
// the store so the user's solution archive survives a fresh start.
func (s *Service) ClearProgress(ctx context.Context) (int, error) {
	recs, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("get all records: %w", err)
	}

	cleared := make([]domain.ProgressRecord, 0, len(recs))
	for _, rec := range recs {
		out := domain.NormalizeRecord(rec)
		out.Status = domain.StatusUnstarted
		out.ReviewCycleIndex = 0
		out.NextReviewDate = nil
		out.LearnHistory = []domain.Event{}
		out.ReviewHistory = []domain.Event{}
		cleared = append(cleared, domain.NormalizeRecord(out))
	}

	if err := s.store.ReplaceAll(ctx, cleared); err != nil {
		return 0, fmt.Errorf("replace all records: %w", err)
	}

	s.log.InfoContext(ctx, "progress cleared", slog.Int("records", len(cleared)))

	return len(cleared), nil
}
