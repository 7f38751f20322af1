// Package sqlite implements the progress store on a local SQLite file,
// for deployments where running PostgreSQL is overkill. One JSON document
// per problem, single writer.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress_records (
    problem_id       TEXT PRIMARY KEY,
    status           TEXT NOT NULL DEFAULT 'UNSTARTED',
    next_review_date TIMESTAMP,
    doc              TEXT NOT NULL,
    updated_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_progress_records_status ON progress_records (status);
`

// Store provides progress record persistence backed by SQLite.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database file and ensures the
// schema exists. The connection pool is capped at one open connection:
// SQLite does not support concurrent writers.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the connection, for readiness probes.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Get returns one record by problem ID, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (domain.ProgressRecord, error) {
	var doc string
	err := s.db.GetContext(ctx, &doc,
		"SELECT doc FROM progress_records WHERE problem_id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProgressRecord{}, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
		}
		return domain.ProgressRecord{}, fmt.Errorf("query record: %w", err)
	}
	return decodeRecord(id, []byte(doc))
}

// GetAll returns every stored record.
func (s *Store) GetAll(ctx context.Context) ([]domain.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT problem_id, doc FROM progress_records ORDER BY problem_id ASC")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []domain.ProgressRecord
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(id, []byte(doc))
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
func (s *Store) Put(ctx context.Context, rec domain.ProgressRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}
	_, err = s.db.ExecContext(ctx, upsertQuery,
		rec.ID, rec.Status.String(), rec.NextReviewDate, string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", rec.ID, err)
	}
	return nil
}

// PutMany upserts records in one transaction.
func (s *Store) PutMany(ctx context.Context, recs []domain.ProgressRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, rec := range recs {
			doc, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", rec.ID, err)
			}
			if _, err := tx.ExecContext(ctx, upsertQuery,
				rec.ID, rec.Status.String(), rec.NextReviewDate, string(doc), time.Now().UTC()); err != nil {
				return fmt.Errorf("upsert record %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

// ReplaceAll swaps the whole collection for recs in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, recs []domain.ProgressRecord) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM progress_records"); err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
		for _, rec := range recs {
			doc, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", rec.ID, err)
			}
			if _, err := tx.ExecContext(ctx, upsertQuery,
				rec.ID, rec.Status.String(), rec.NextReviewDate, string(doc), time.Now().UTC()); err != nil {
				return fmt.Errorf("insert record %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

const upsertQuery = `
INSERT INTO progress_records (problem_id, status, next_review_date, doc, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (problem_id) DO UPDATE SET
    status = excluded.status,
    next_review_date = excluded.next_review_date,
    doc = excluded.doc,
    updated_at = excluded.updated_at`

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func decodeRecord(id string, doc []byte) (domain.ProgressRecord, error) {
	var raw domain.RawRecord
	if err := json.Unmarshal(doc, &raw); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return domain.RecordFromRaw(id, raw), nil
}
