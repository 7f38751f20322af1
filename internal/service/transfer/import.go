package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Import applies a bulk document to the store. The document must parse
// and validate as a whole before anything is written; on any validation
// failure the store is left in its prior state. A scoped document merges
// into existing records: importing RECORDS preserves existing solutions
// and importing SOLUTIONS preserves existing scheduling state.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all records: %w", err)
	}
	byID := make(map[string]domain.ProgressRecord, len(existing))
	for _, rec := range existing {
		byID[rec.ID] = domain.NormalizeRecord(rec)
	}

	result := &ImportResult{Scope: doc.Scope}
	merged := make([]domain.ProgressRecord, 0, len(doc.Records))
	for id, raw := range doc.Records {
		imported := domain.RecordFromRaw(id, raw)
		current, ok := byID[id]
		if !ok {
			current = domain.NewRecord(id)
			result.Created++
		} else {
			result.Merged++
		}
		merged = append(merged, mergeRecord(current, imported, doc.Scope))
		result.Imported++
	}

	if err := s.store.PutMany(ctx, merged); err != nil {
		return nil, fmt.Errorf("put records: %w", err)
	}

	s.log.InfoContext(ctx, "import applied",
		slog.String("scope", string(doc.Scope)),
		slog.Int("imported", result.Imported),
		slog.Int("created", result.Created),
	)

	return result, nil
}

// parseDocument decodes and validates the document shape. Unknown fields
// inside records are tolerated; a document that is not the expected
// mapping shape is rejected outright.
func parseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewValidationError("document", fmt.Sprintf("not valid JSON: %v", err))
	}
	if doc.Version != DocumentVersion {
		return nil, domain.NewValidationError("version", fmt.Sprintf("unsupported version %d", doc.Version))
	}
	if doc.Scope == "" {
		doc.Scope = ScopeFull
	}
	if !doc.Scope.IsValid() {
		return nil, domain.NewValidationError("scope", "must be FULL, RECORDS or SOLUTIONS")
	}
	if doc.Records == nil {
		return nil, domain.NewValidationError("records", "required")
	}
	for id := range doc.Records {
		if strings.TrimSpace(id) == "" {
			return nil, domain.NewValidationError("records", "empty problem id key")
		}
	}
	return &doc, nil
}

// mergeRecord overlays the imported fields selected by scope onto the
// current record. Fields outside the scope are never deleted.
func mergeRecord(current, imported domain.ProgressRecord, scope Scope) domain.ProgressRecord {
	out := current.Clone()

	switch scope {
	case ScopeFull:
		out = imported.Clone()
		// Keep locally cached display metadata when the document has none.
		if imported.Title.IsZero() {
			out.Title = current.Title
		}
		if imported.Slug == "" {
			out.Slug = current.Slug
		}
		if imported.Difficulty == "" {
			out.Difficulty = current.Difficulty
		}
	case ScopeRecords:
		out.Status = imported.Status
		out.ReviewCycleIndex = imported.ReviewCycleIndex
		out.NextReviewDate = imported.NextReviewDate
		out.LearnHistory = imported.LearnHistory
		out.ReviewHistory = imported.ReviewHistory
	case ScopeSolutions:
		out.Solutions = imported.Solutions
	}

	return domain.NormalizeRecord(out)
}
