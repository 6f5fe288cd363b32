package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recruitedge-api/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const flagColumns = `id, user_id, content_type, content_id, reason, severity, status, notes, resolution, resolved_at, created_at, updated_at`

// Create inserts a content flag.
func (r *PGRepo) Create(ctx context.Context, f ContentFlag) error {
	const query = `
INSERT INTO content_flags (
    id,
    user_id,
    content_type,
    content_id,
    reason,
    severity,
    status,
    notes,
    resolution,
    resolved_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		f.ID,
		f.UserID,
		f.ContentType,
		f.ContentID,
		f.Reason,
		f.Severity,
		f.Status,
		db.NullString(f.Notes),
		db.NullString(f.Resolution),
		db.NullTime(f.ResolvedAt),
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert content flag: %w", err)
	}
	return nil
}

// Get fetches a content flag by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (ContentFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM content_flags WHERE user_id = $1 AND id = $2`
	f, err := scanFlag(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ContentFlag{}, ErrNotFound
		}
		return ContentFlag{}, fmt.Errorf("get content flag: %w", err)
	}
	return f, nil
}

// List returns a user's content flags, newest first.
func (r *PGRepo) List(ctx context.Context, userID string, lf ListFilter, limit, offset int) ([]ContentFlag, error) {
	query := `SELECT ` + flagColumns + `
FROM content_flags
WHERE user_id = $1
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR severity = $3)
  AND ($4 = '' OR content_type = $4)
ORDER BY created_at DESC
LIMIT $5 OFFSET $6`
	rows, err := r.DB.QueryContext(ctx, query, userID, lf.Status, lf.Severity, lf.ContentType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list content flags: %w", err)
	}
	defer rows.Close()

	out := []ContentFlag{}
	for rows.Next() {
		f, err := scanFlag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content flag: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a content flag.
func (r *PGRepo) Update(ctx context.Context, f ContentFlag) error {
	const query = `
UPDATE content_flags
SET reason = $3,
    severity = $4,
    status = $5,
    notes = $6,
    resolution = $7,
    resolved_at = $8,
    updated_at = $9
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		f.UserID,
		f.ID,
		f.Reason,
		f.Severity,
		f.Status,
		db.NullString(f.Notes),
		db.NullString(f.Resolution),
		db.NullTime(f.ResolvedAt),
		f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update content flag: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a content flag.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM content_flags WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete content flag: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func scanFlag(s db.Scanner) (ContentFlag, error) {
	var f ContentFlag
	var notes, resolution sql.NullString
	var resolvedAt sql.NullTime
	err := s.Scan(
		&f.ID,
		&f.UserID,
		&f.ContentType,
		&f.ContentID,
		&f.Reason,
		&f.Severity,
		&f.Status,
		&notes,
		&resolution,
		&resolvedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return ContentFlag{}, err
	}
	f.Notes = notes.String
	f.Resolution = resolution.String
	f.ResolvedAt = db.TimePtr(resolvedAt)
	return f, nil
}
