package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cognipath/internal/path"
)

// PathRepo provides durable, owner-scoped persistence of paths.
// It implements the path.Store interface.
type PathRepo struct {
	db *sql.DB
}

// NewPathRepo creates a new PathRepo.
func NewPathRepo(db *sql.DB) *PathRepo {
	return &PathRepo{db: db}
}

// Create atomically inserts a new path with current_step = 0. The
// whole chunk sequence is serialized into one column, so the insert
// either persists the complete path or nothing.
func (r *PathRepo) Create(ctx context.Context, p *path.Path) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	chunksJSON, err := json.Marshal(p.Chunks)
	if err != nil {
		return fmt.Errorf("failed to marshal chunks: %w", err)
	}

	var sourceDoc sql.NullString
	if p.SourceDoc != "" {
		sourceDoc = sql.NullString{String: p.SourceDoc, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO paths (id, owner_id, title, chunks, source_doc, current_step)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		p.ID, p.Owner, p.Title, string(chunksJSON), sourceDoc,
	)
	if err != nil {
		return fmt.Errorf("failed to insert path: %w", err)
	}

	p.CurrentStep = 0
	return nil
}

// GetByID returns the path scoped to the requesting owner. A missing
// row and a row owned by someone else both return path.ErrNotFound so
// existence never leaks across users.
func (r *PathRepo) GetByID(ctx context.Context, id, owner string) (*path.Path, error) {
	var (
		p            path.Path
		chunksJSON   string
		sourceDoc    sql.NullString
		createdAtStr string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, chunks, source_doc, current_step, created_at
		 FROM paths WHERE id = ? AND owner_id = ?`,
		id, owner,
	).Scan(&p.ID, &p.Owner, &p.Title, &chunksJSON, &sourceDoc, &p.CurrentStep, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, path.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query path: %w", err)
	}

	if err := json.Unmarshal([]byte(chunksJSON), &p.Chunks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chunks: %w", err)
	}
	if sourceDoc.Valid {
		p.SourceDoc = sourceDoc.String
		p.HasSource = true
	}
	p.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListByOwner returns summaries of the owner's paths, newest first.
func (r *PathRepo) ListByOwner(ctx context.Context, owner string) ([]path.Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, json_array_length(chunks), current_step, created_at
		 FROM paths WHERE owner_id = ? ORDER BY created_at DESC, id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	summaries := []path.Summary{}
	for rows.Next() {
		var (
			s            path.Summary
			createdAtStr string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.ChunkCount, &s.CurrentStep, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan path summary: %w", err)
		}
		s.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paths: %w", err)
	}

	return summaries, nil
}

// AdvanceStep conditionally increments current_step, only if the
// stored value still equals fromStep at the time of the write. Under
// two concurrent advances with the same fromStep, exactly one update
// matches its WHERE clause; the loser re-probes to tell a lost race
// from a missing path.
func (r *PathRepo) AdvanceStep(ctx context.Context, id, owner string, fromStep int) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE paths SET current_step = current_step + 1
		 WHERE id = ? AND owner_id = ? AND current_step = ?`,
		id, owner, fromStep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to advance step: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM paths WHERE id = ? AND owner_id = ?`, id, owner,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, path.ErrNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("failed to probe path: %w", err)
		}
		return 0, path.ErrConflict
	}

	return fromStep + 1, nil
}

// parseTimestamp handles the DATETIME formats SQLite may emit.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return t, nil
}
