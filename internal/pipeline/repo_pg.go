package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"recruitedge-api/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const candidateColumns = `id, user_id, full_name, email, phone, job_posting_id, stage, rating, tags, notes, source, stage_changed_at, created_at, updated_at`

// Create inserts a candidate.
func (r *PGRepo) Create(ctx context.Context, c Candidate) error {
	const query = `
INSERT INTO candidates (
    id,
    user_id,
    full_name,
    email,
    phone,
    job_posting_id,
    stage,
    rating,
    tags,
    notes,
    source,
    stage_changed_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.UserID,
		c.FullName,
		db.NullString(c.Email),
		db.NullString(c.Phone),
		db.NullString(c.JobPostingID),
		c.Stage,
		db.NullInt(c.Rating),
		pq.Array(c.Tags),
		db.NullString(c.Notes),
		db.NullString(c.Source),
		c.StageChangedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// Get fetches a candidate by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1 AND id = $2`
	c, err := scanCandidate(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// List returns a user's candidates, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + `
FROM candidates
WHERE user_id = $1 AND ($2 = '' OR stage = $2) AND ($3 = '' OR job_posting_id = $3)
ORDER BY updated_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Stage, f.JobPostingID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a candidate.
func (r *PGRepo) Update(ctx context.Context, c Candidate) error {
	const query = `
UPDATE candidates
SET full_name = $3,
    email = $4,
    phone = $5,
    job_posting_id = $6,
    stage = $7,
    rating = $8,
    tags = $9,
    notes = $10,
    source = $11,
    stage_changed_at = $12,
    updated_at = $13
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		c.UserID,
		c.ID,
		c.FullName,
		db.NullString(c.Email),
		db.NullString(c.Phone),
		db.NullString(c.JobPostingID),
		c.Stage,
		db.NullInt(c.Rating),
		pq.Array(c.Tags),
		db.NullString(c.Notes),
		db.NullString(c.Source),
		c.StageChangedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a candidate.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// CountByStage groups userID's candidates by stage.
func (r *PGRepo) CountByStage(ctx context.Context, userID, jobPostingID string) (map[string]int, error) {
	const query = `
SELECT stage, COUNT(*)
FROM candidates
WHERE user_id = $1 AND ($2 = '' OR job_posting_id = $2)
GROUP BY stage`
	rows, err := r.DB.QueryContext(ctx, query, userID, jobPostingID)
	if err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}

func scanCandidate(s db.Scanner) (Candidate, error) {
	var c Candidate
	var email, phone, jobPostingID, notes, source sql.NullString
	var rating sql.NullInt64
	var tags pq.StringArray
	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&email,
		&phone,
		&jobPostingID,
		&c.Stage,
		&rating,
		&tags,
		&notes,
		&source,
		&c.StageChangedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}
	c.Email = email.String
	c.Phone = phone.String
	c.JobPostingID = jobPostingID.String
	c.Notes = notes.String
	c.Source = source.String
	c.Rating = db.IntPtr(rating)
	c.Tags = []string(tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}
