package progress

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func docFor(t *testing.T, rec domain.ProgressRecord) []byte {
	t.Helper()

	doc, err := json.Marshal(rec)
	require.NoError(t, err)
	return doc
}

func learningRecord(id string) domain.ProgressRecord {
	return domain.NormalizeRecord(domain.ProgressRecord{
		ID:               id,
		Status:           domain.StatusLearning,
		ReviewCycleIndex: 1,
		LearnHistory:     []domain.Event{{Date: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC), Plan: "blind75"}},
	})
}

func TestGet_Found(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rec := learningRecord("two-sum")

	mock.ExpectQuery(`SELECT problem_id, doc FROM progress_records`).
		WithArgs("two-sum").
		WillReturnRows(pgxmock.NewRows([]string{"problem_id", "doc"}).
			AddRow("two-sum", docFor(t, rec)))

	got, err := repo.Get(context.Background(), "two-sum")
	require.NoError(t, err)

	assert.Equal(t, rec, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT problem_id, doc FROM progress_records`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_LegacyDocumentNormalized(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	legacy := []byte(`{"status": "learning",
		"learnHistory": [{"date": "2026-03-01T09:00:00Z"}],
		"solutionText": "use a hash map"}`)
	mock.ExpectQuery(`SELECT problem_id, doc FROM progress_records`).
		WithArgs("two-sum").
		WillReturnRows(pgxmock.NewRows([]string{"problem_id", "doc"}).
			AddRow("two-sum", legacy))

	got, err := repo.Get(context.Background(), "two-sum")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusLearning, got.Status)
	require.Len(t, got.Solutions, 1)
	assert.Equal(t, "use a hash map", got.Solutions[0].Notes)
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	a := learningRecord("lru-cache")
	b := learningRecord("two-sum")

	mock.ExpectQuery(`SELECT problem_id, doc FROM progress_records ORDER BY problem_id`).
		WillReturnRows(pgxmock.NewRows([]string{"problem_id", "doc"}).
			AddRow("lru-cache", docFor(t, a)).
			AddRow("two-sum", docFor(t, b)))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "lru-cache", got[0].ID)
	assert.Equal(t, "two-sum", got[1].ID)
}

func TestPut_Upserts(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO progress_records .+ ON CONFLICT \(problem_id\) DO UPDATE`).
		WithArgs("two-sum", "LEARNING", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Put(context.Background(), learningRecord("two-sum"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutMany_SingleTransaction(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO progress_records`).
		WithArgs("lru-cache", "LEARNING", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO progress_records`).
		WithArgs("two-sum", "LEARNING", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.PutMany(context.Background(), []domain.ProgressRecord{
		learningRecord("lru-cache"),
		learningRecord("two-sum"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutMany_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	require.NoError(t, repo.PutMany(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutMany_FailureRollsBack(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO progress_records`).
		WithArgs("two-sum", "LEARNING", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.PutMany(context.Background(), []domain.ProgressRecord{learningRecord("two-sum")})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_ClearsThenInserts(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM progress_records`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`INSERT INTO progress_records`).
		WithArgs("two-sum", "LEARNING", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), []domain.ProgressRecord{learningRecord("two-sum")})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
