package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Export produces the bulk document for every stored record, filtered to
// the requested scope.
func (s *Service) Export(ctx context.Context, scope Scope) (*Document, error) {
	if !scope.IsValid() {
		return nil, domain.NewValidationError("scope", "must be FULL, RECORDS or SOLUTIONS")
	}

	recs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all records: %w", err)
	}

	doc := &Document{
		Version:    DocumentVersion,
		Scope:      scope,
		ExportedAt: time.Now().UTC(),
		Records:    make(map[string]domain.RawRecord, len(recs)),
	}
	for _, rec := range recs {
		doc.Records[rec.ID] = filterRaw(domain.NormalizeRecord(rec).Raw(), scope)
	}

	s.log.InfoContext(ctx, "export produced",
		slog.String("scope", string(scope)),
		slog.Int("records", len(doc.Records)),
	)

	return doc, nil
}

// filterRaw strips the fields outside the scope so the document only
// carries what it claims to.
func filterRaw(raw domain.RawRecord, scope Scope) domain.RawRecord {
	switch scope {
	case ScopeRecords:
		raw.Solutions = nil
		raw.SolutionText = nil
		raw.SolutionLink = nil
	case ScopeSolutions:
		raw.Status = nil
		raw.ReviewCycleIndex = nil
		raw.NextReviewDate = nil
		raw.LearnHistory = nil
		raw.ReviewHistory = nil
	}
	return raw
}
