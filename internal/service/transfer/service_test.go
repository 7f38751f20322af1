package transfer

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

type mockStore struct {
	GetAllFunc  func(ctx context.Context) ([]domain.ProgressRecord, error)
	PutManyFunc func(ctx context.Context, recs []domain.ProgressRecord) error
}

func (m *mockStore) GetAll(ctx context.Context) ([]domain.ProgressRecord, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) PutMany(ctx context.Context, recs []domain.ProgressRecord) error {
	if m.PutManyFunc != nil {
		return m.PutManyFunc(ctx, recs)
	}
	return nil
}

func learningRecord(id string) domain.ProgressRecord {
	return domain.NormalizeRecord(domain.ProgressRecord{
		ID:               id,
		Status:           domain.StatusLearning,
		ReviewCycleIndex: 1,
		LearnHistory:     []domain.Event{{Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Plan: "blind75"}},
		ReviewHistory:    []domain.Event{{Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), Plan: "blind75"}},
		Solutions:        []domain.Solution{{ID: "s1", Title: "Hash map", Notes: "one pass"}},
	})
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

func TestExport_FullScope(t *testing.T) {
	t.Parallel()

	store := &mockStore{GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
		return []domain.ProgressRecord{learningRecord("two-sum")}, nil
	}}

	doc, err := NewService(slog.Default(), store).Export(context.Background(), ScopeFull)
	require.NoError(t, err)

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, ScopeFull, doc.Scope)
	require.Contains(t, doc.Records, "two-sum")
	raw := doc.Records["two-sum"]
	require.NotNil(t, raw.Status)
	assert.Equal(t, "LEARNING", *raw.Status)
	assert.Len(t, raw.Solutions, 1)
}

func TestExport_RecordsScopeStripsSolutions(t *testing.T) {
	t.Parallel()

	store := &mockStore{GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
		return []domain.ProgressRecord{learningRecord("two-sum")}, nil
	}}

	doc, err := NewService(slog.Default(), store).Export(context.Background(), ScopeRecords)
	require.NoError(t, err)

	raw := doc.Records["two-sum"]
	assert.Nil(t, raw.Solutions)
	assert.NotNil(t, raw.Status)
	assert.NotEmpty(t, raw.LearnHistory)
}

func TestExport_SolutionsScopeStripsSchedule(t *testing.T) {
	t.Parallel()

	store := &mockStore{GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
		return []domain.ProgressRecord{learningRecord("two-sum")}, nil
	}}

	doc, err := NewService(slog.Default(), store).Export(context.Background(), ScopeSolutions)
	require.NoError(t, err)

	raw := doc.Records["two-sum"]
	assert.Nil(t, raw.Status)
	assert.Nil(t, raw.LearnHistory)
	assert.Len(t, raw.Solutions, 1)
}

func TestExport_InvalidScope(t *testing.T) {
	t.Parallel()

	_, err := NewService(slog.Default(), &mockStore{}).Export(context.Background(), Scope("EVERYTHING"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

func docBytes(t *testing.T, doc Document) []byte {
	t.Helper()

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestImport_CreatesAndMerges(t *testing.T) {
	t.Parallel()

	existing := learningRecord("two-sum")
	var written []domain.ProgressRecord
	store := &mockStore{
		GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
			return []domain.ProgressRecord{existing}, nil
		},
		PutManyFunc: func(_ context.Context, recs []domain.ProgressRecord) error {
			written = recs
			return nil
		},
	}

	doc := Document{
		Version: DocumentVersion,
		Scope:   ScopeFull,
		Records: map[string]domain.RawRecord{
			"two-sum":     learningRecord("two-sum").Raw(),
			"word-ladder": {},
		},
	}

	result, err := NewService(slog.Default(), store).Import(context.Background(), docBytes(t, doc))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Merged)
	assert.Len(t, written, 2)
}

func TestImport_MalformedJSONWritesNothing(t *testing.T) {
	t.Parallel()

	putCalled := false
	store := &mockStore{PutManyFunc: func(_ context.Context, _ []domain.ProgressRecord) error {
		putCalled = true
		return nil
	}}

	_, err := NewService(slog.Default(), store).Import(context.Background(), []byte("{not json"))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, putCalled)
}

func TestImport_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	doc := Document{Version: 99, Scope: ScopeFull, Records: map[string]domain.RawRecord{}}
	_, err := NewService(slog.Default(), &mockStore{}).Import(context.Background(), docBytes(t, doc))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImport_EmptyProblemIDKeyRejected(t *testing.T) {
	t.Parallel()

	putCalled := false
	store := &mockStore{PutManyFunc: func(_ context.Context, _ []domain.ProgressRecord) error {
		putCalled = true
		return nil
	}}

	doc := Document{
		Version: DocumentVersion,
		Scope:   ScopeFull,
		Records: map[string]domain.RawRecord{"  ": {}},
	}

	_, err := NewService(slog.Default(), store).Import(context.Background(), docBytes(t, doc))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, putCalled, "validation must complete before the first write")
}

func TestImport_MissingScopeDefaultsToFull(t *testing.T) {
	t.Parallel()

	doc := Document{Version: DocumentVersion, Records: map[string]domain.RawRecord{}}
	result, err := NewService(slog.Default(), &mockStore{}).Import(context.Background(), docBytes(t, doc))

	require.NoError(t, err)
	assert.Equal(t, ScopeFull, result.Scope)
}

func TestImport_RecordsScopePreservesSolutions(t *testing.T) {
	t.Parallel()

	existing := learningRecord("two-sum")
	var written []domain.ProgressRecord
	store := &mockStore{
		GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
			return []domain.ProgressRecord{existing}, nil
		},
		PutManyFunc: func(_ context.Context, recs []domain.ProgressRecord) error {
			written = recs
			return nil
		},
	}

	// The incoming document resets the schedule and carries no solutions.
	doc := Document{
		Version: DocumentVersion,
		Scope:   ScopeRecords,
		Records: map[string]domain.RawRecord{"two-sum": {}},
	}

	_, err := NewService(slog.Default(), store).Import(context.Background(), docBytes(t, doc))
	require.NoError(t, err)

	require.Len(t, written, 1)
	out := written[0]
	assert.Equal(t, domain.StatusUnstarted, out.Status)
	assert.Empty(t, out.LearnHistory)
	require.Len(t, out.Solutions, 1)
	assert.Equal(t, "Hash map", out.Solutions[0].Title)
}

func TestImport_SolutionsScopePreservesSchedule(t *testing.T) {
	t.Parallel()

	existing := learningRecord("two-sum")
	var written []domain.ProgressRecord
	store := &mockStore{
		GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
			return []domain.ProgressRecord{existing}, nil
		},
		PutManyFunc: func(_ context.Context, recs []domain.ProgressRecord) error {
			written = recs
			return nil
		},
	}

	title := "Two pointers"
	doc := Document{
		Version: DocumentVersion,
		Scope:   ScopeSolutions,
		Records: map[string]domain.RawRecord{
			"two-sum": {Solutions: []domain.RawSolution{{Title: &title}}},
		},
	}

	_, err := NewService(slog.Default(), store).Import(context.Background(), docBytes(t, doc))
	require.NoError(t, err)

	require.Len(t, written, 1)
	out := written[0]
	assert.Equal(t, domain.StatusLearning, out.Status)
	assert.Equal(t, 1, out.ReviewCycleIndex)
	require.Len(t, out.Solutions, 1)
	assert.Equal(t, "Two pointers", out.Solutions[0].Title)
}

func TestImport_FullScopeKeepsCachedMetadataWhenAbsent(t *testing.T) {
	t.Parallel()

	existing := learningRecord("two-sum")
	existing.Title = domain.BilingualText{En: "Two Sum"}
	existing.Difficulty = domain.DifficultyEasy

	var written []domain.ProgressRecord
	store := &mockStore{
		GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
			return []domain.ProgressRecord{existing}, nil
		},
		PutManyFunc: func(_ context.Context, recs []domain.ProgressRecord) error {
			written = recs
			return nil
		},
	}

	doc := Document{
		Version: DocumentVersion,
		Scope:   ScopeFull,
		Records: map[string]domain.RawRecord{"two-sum": {}},
	}

	_, err := NewService(slog.Default(), store).Import(context.Background(), docBytes(t, doc))
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.Equal(t, "Two Sum", written[0].Title.En)
	assert.Equal(t, domain.DifficultyEasy, written[0].Difficulty)
}

func TestImport_ExportRoundTrip(t *testing.T) {
	t.Parallel()

	original := learningRecord("two-sum")
	store := &mockStore{GetAllFunc: func(_ context.Context) ([]domain.ProgressRecord, error) {
		return []domain.ProgressRecord{original}, nil
	}}
	svc := NewService(slog.Default(), store)

	doc, err := svc.Export(context.Background(), ScopeFull)
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var written []domain.ProgressRecord
	emptyStore := &mockStore{PutManyFunc: func(_ context.Context, recs []domain.ProgressRecord) error {
		written = recs
		return nil
	}}

	_, err = NewService(slog.Default(), emptyStore).Import(context.Background(), data)
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.Equal(t, original, written[0])
}
