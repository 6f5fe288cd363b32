package coverletters

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

const letterColumns = `id, user_id, title, content, tone, company_name, job_title, job_posting_id, resume_id, status, created_at, updated_at`

// Create inserts a new cover letter.
func (r *PGRepo) Create(ctx context.Context, cl CoverLetter) error {
	const query = `
INSERT INTO cover_letters (
    id,
    user_id,
    title,
    content,
    tone,
    company_name,
    job_title,
    job_posting_id,
    resume_id,
    status,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		cl.ID,
		cl.UserID,
		cl.Title,
		cl.Content,
		cl.Tone,
		db.NullString(cl.CompanyName),
		db.NullString(cl.JobTitle),
		db.NullString(cl.JobPostingID),
		db.NullString(cl.ResumeID),
		cl.Status,
		cl.CreatedAt,
		cl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cover letter: %w", err)
	}
	return nil
}

// Get fetches a cover letter by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	query := `SELECT ` + letterColumns + ` FROM cover_letters WHERE user_id = $1 AND id = $2`
	cl, err := scanLetter(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, fmt.Errorf("get cover letter: %w", err)
	}
	return cl, nil
}

// List returns a user's cover letters, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]CoverLetter, error) {
	query := `SELECT ` + letterColumns + `
FROM cover_letters
WHERE user_id = $1 AND ($2 = '' OR status = $2) AND ($3 = '' OR tone = $3)
ORDER BY updated_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Status, f.Tone, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cover letters: %w", err)
	}
	defer rows.Close()

	out := []CoverLetter{}
	for rows.Next() {
		cl, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cover letter: %w", err)
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a cover letter.
func (r *PGRepo) Update(ctx context.Context, cl CoverLetter) error {
	const query = `
UPDATE cover_letters
SET title = $3,
    content = $4,
    tone = $5,
    company_name = $6,
    job_title = $7,
    job_posting_id = $8,
    resume_id = $9,
    status = $10,
    updated_at = $11
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		cl.UserID,
		cl.ID,
		cl.Title,
		cl.Content,
		cl.Tone,
		db.NullString(cl.CompanyName),
		db.NullString(cl.JobTitle),
		db.NullString(cl.JobPostingID),
		db.NullString(cl.ResumeID),
		cl.Status,
		cl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cover letter: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a cover letter.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM cover_letters WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete cover letter: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func scanLetter(s db.Scanner) (CoverLetter, error) {
	var cl CoverLetter
	var company, jobTitle, jobPostingID, resumeID sql.NullString
	err := s.Scan(
		&cl.ID,
		&cl.UserID,
		&cl.Title,
		&cl.Content,
		&cl.Tone,
		&company,
		&jobTitle,
		&jobPostingID,
		&resumeID,
		&cl.Status,
		&cl.CreatedAt,
		&cl.UpdatedAt,
	)
	if err != nil {
		return CoverLetter{}, err
	}
	cl.CompanyName = company.String
	cl.JobTitle = jobTitle.String
	cl.JobPostingID = jobPostingID.String
	cl.ResumeID = resumeID.String
	return cl, nil
}
