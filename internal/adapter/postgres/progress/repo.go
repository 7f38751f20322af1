// Package progress implements the progress store on PostgreSQL. Records
// are persisted as one JSONB document per problem, with the status and
// next review date denormalized into columns for querying.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/akulichev/coderecall-backend/internal/adapter/postgres"
	"github.com/akulichev/coderecall-backend/internal/domain"
)

const table = "progress_records"

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides progress record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns one record by problem ID, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.ProgressRecord, error) {
	query, args, err := qb.Select("problem_id", "doc").
		From(table).
		Where(squirrel.Eq{"problem_id": id}).
		ToSql()
	if err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("build query: %w", err)
	}

	var problemID string
	var doc []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&problemID, &doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProgressRecord{}, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
		}
		return domain.ProgressRecord{}, fmt.Errorf("query record: %w", err)
	}

	return decodeRecord(problemID, doc)
}

// GetAll returns every stored record.
func (r *Repo) GetAll(ctx context.Context) ([]domain.ProgressRecord, error) {
	query, args, err := qb.Select("problem_id", "doc").
		From(table).
		OrderBy("problem_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []domain.ProgressRecord
	for rows.Next() {
		var problemID string
		var doc []byte
		if err := rows.Scan(&problemID, &doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(problemID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return out, nil
}

// Put upserts one record.
func (r *Repo) Put(ctx context.Context, rec domain.ProgressRecord) error {
	query, args, err := upsertSQL(rec)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert record %s: %w", rec.ID, err)
	}
	return nil
}

// PutMany upserts records in a single transaction: either every record
// lands or none do.
func (r *Repo) PutMany(ctx context.Context, recs []domain.ProgressRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, rec := range recs {
		query, args, err := upsertSQL(rec)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole collection for recs in one transaction.
func (r *Repo) ReplaceAll(ctx context.Context, recs []domain.ProgressRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	for _, rec := range recs {
		query, args, err := upsertSQL(rec)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func upsertSQL(rec domain.ProgressRecord) (string, []any, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return "", nil, fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}

	query, args, err := qb.Insert(table).
		Columns("problem_id", "status", "next_review_date", "doc", "updated_at").
		Values(rec.ID, rec.Status.String(), rec.NextReviewDate, doc, time.Now().UTC()).
		Suffix(`ON CONFLICT (problem_id) DO UPDATE SET
			status = EXCLUDED.status,
			next_review_date = EXCLUDED.next_review_date,
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert: %w", err)
	}
	return query, args, nil
}

// decodeRecord tolerates legacy document shapes by going through the
// Normalizer rather than unmarshalling into the canonical struct.
func decodeRecord(id string, doc []byte) (domain.ProgressRecord, error) {
	var raw domain.RawRecord
	if err := json.Unmarshal(doc, &raw); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return domain.RecordFromRaw(id, raw), nil
}
