package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/ports"
)

const indexSchema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id     TEXT PRIMARY KEY,
    run_day    TEXT NOT NULL,
    image_path TEXT NOT NULL,
    has_result INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_day ON runs(run_day);
`

// SQLiteIndex keeps a queryable summary of persisted runs alongside the
// authoritative on-disk run tree.
type SQLiteIndex struct {
	db *sql.DB
}

var _ ports.RunIndex = (*SQLiteIndex)(nil)

// OpenSQLiteIndex opens (creating if needed) the index database at path.
func OpenSQLiteIndex(path string) (*SQLiteIndex, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create run index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run index: %w", err)
	}

	if _, err := db.Exec(indexSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply run index schema: %w", err)
	}

	return &SQLiteIndex{db: db}, nil
}

// Close releases the underlying database handle.
func (i *SQLiteIndex) Close() error {
	if i.db == nil {
		return nil
	}
	return i.db.Close()
}

// RecordRun upserts one run summary row.
func (i *SQLiteIndex) RecordRun(ctx context.Context, run domain.ProcessingRun) error {
	query, args, err := sq.Insert("runs").
		Columns("run_id", "run_day", "image_path", "has_result", "created_at").
		Values(run.RunID, run.PartitionKey(), run.InputImagePath, run.StructuredResult != nil, run.Timestamp.Format(time.RFC3339)).
		Suffix("ON CONFLICT(run_id) DO UPDATE SET has_result = excluded.has_result, created_at = excluded.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := i.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}
	return nil
}

// RunsOnDay lists runs recorded under one date partition, oldest first.
func (i *SQLiteIndex) RunsOnDay(ctx context.Context, day time.Time) ([]domain.RunSummary, error) {
	query, args, err := sq.Select("run_id", "image_path", "has_result", "created_at").
		From("runs").
		Where(sq.Eq{"run_day": day.Format("2006-01-02")}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RunSummary
	for rows.Next() {
		var (
			summary   domain.RunSummary
			createdAt string
		)
		if err := rows.Scan(&summary.RunID, &summary.ImagePath, &summary.HasResult, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if summary.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return summaries, nil
}
