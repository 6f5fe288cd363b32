package monitor

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

const healthColumns = `id, user_id, component, status, latency_ms, message, checked_at, created_at`

// Create inserts a health check.
func (r *PGRepo) Create(ctx context.Context, hc HealthCheck) error {
	const query = `
INSERT INTO health_checks (
    id,
    user_id,
    component,
    status,
    latency_ms,
    message,
    checked_at,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		hc.ID,
		hc.UserID,
		hc.Component,
		hc.Status,
		db.NullInt(hc.LatencyMs),
		db.NullString(hc.Message),
		hc.CheckedAt,
		hc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert health check: %w", err)
	}
	return nil
}

// Get fetches a health check by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (HealthCheck, error) {
	query := `SELECT ` + healthColumns + ` FROM health_checks WHERE user_id = $1 AND id = $2`
	hc, err := scanHealthCheck(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HealthCheck{}, ErrNotFound
		}
		return HealthCheck{}, fmt.Errorf("get health check: %w", err)
	}
	return hc, nil
}

// List returns a user's health checks, most recent first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]HealthCheck, error) {
	query := `SELECT ` + healthColumns + `
FROM health_checks
WHERE user_id = $1 AND ($2 = '' OR component = $2) AND ($3 = '' OR status = $3)
ORDER BY checked_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Component, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list health checks: %w", err)
	}
	defer rows.Close()

	out := []HealthCheck{}
	for rows.Next() {
		hc, err := scanHealthCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health check: %w", err)
		}
		out = append(out, hc)
	}
	return out, rows.Err()
}

// Delete removes a health check.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM health_checks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete health check: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func scanHealthCheck(s db.Scanner) (HealthCheck, error) {
	var hc HealthCheck
	var latency sql.NullInt64
	var message sql.NullString
	err := s.Scan(
		&hc.ID,
		&hc.UserID,
		&hc.Component,
		&hc.Status,
		&latency,
		&message,
		&hc.CheckedAt,
		&hc.CreatedAt,
	)
	if err != nil {
		return HealthCheck{}, err
	}
	hc.LatencyMs = db.IntPtr(latency)
	hc.Message = message.String
	return hc, nil
}
