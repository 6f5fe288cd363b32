package jobpostings

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

const postingColumns = `id, user_id, title, company, location, employment_type, remote, salary_min, salary_max, description, description_text, requirements, status, published_at, created_at, updated_at`

// Create inserts a posting.
func (r *PGRepo) Create(ctx context.Context, p JobPosting) error {
	const query = `
INSERT INTO job_postings (
    id,
    user_id,
    title,
    company,
    location,
    employment_type,
    remote,
    salary_min,
    salary_max,
    description,
    description_text,
    requirements,
    status,
    published_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.UserID,
		p.Title,
		p.Company,
		db.NullString(p.Location),
		p.EmploymentType,
		p.Remote,
		db.NullInt64(p.SalaryMin),
		db.NullInt64(p.SalaryMax),
		p.Description,
		p.DescriptionText,
		pq.Array(p.Requirements),
		p.Status,
		db.NullTime(p.PublishedAt),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job posting: %w", err)
	}
	return nil
}

// Get fetches a posting by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE user_id = $1 AND id = $2`
	p, err := scanPosting(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobPosting{}, ErrNotFound
		}
		return JobPosting{}, fmt.Errorf("get job posting: %w", err)
	}
	return p, nil
}

// List returns a user's postings, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]JobPosting, error) {
	query := `SELECT ` + postingColumns + `
FROM job_postings
WHERE user_id = $1 AND ($2 = '' OR status = $2) AND ($3 = '' OR employment_type = $3)
ORDER BY updated_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Status, f.EmploymentType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	defer rows.Close()

	out := []JobPosting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job posting: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a posting.
func (r *PGRepo) Update(ctx context.Context, p JobPosting) error {
	const query = `
UPDATE job_postings
SET title = $3,
    company = $4,
    location = $5,
    employment_type = $6,
    remote = $7,
    salary_min = $8,
    salary_max = $9,
    description = $10,
    description_text = $11,
    requirements = $12,
    status = $13,
    published_at = $14,
    updated_at = $15
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		p.UserID,
		p.ID,
		p.Title,
		p.Company,
		db.NullString(p.Location),
		p.EmploymentType,
		p.Remote,
		db.NullInt64(p.SalaryMin),
		db.NullInt64(p.SalaryMax),
		p.Description,
		p.DescriptionText,
		pq.Array(p.Requirements),
		p.Status,
		db.NullTime(p.PublishedAt),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job posting: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a posting. Candidates referencing it keep the dangling id.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM job_postings WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func scanPosting(s db.Scanner) (JobPosting, error) {
	var p JobPosting
	var location sql.NullString
	var salaryMin, salaryMax sql.NullInt64
	var requirements pq.StringArray
	var publishedAt sql.NullTime
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Company,
		&location,
		&p.EmploymentType,
		&p.Remote,
		&salaryMin,
		&salaryMax,
		&p.Description,
		&p.DescriptionText,
		&requirements,
		&p.Status,
		&publishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return JobPosting{}, err
	}
	p.Location = location.String
	p.SalaryMin = db.Int64Ptr(salaryMin)
	p.SalaryMax = db.Int64Ptr(salaryMax)
	p.Requirements = []string(requirements)
	if p.Requirements == nil {
		p.Requirements = []string{}
	}
	p.PublishedAt = db.TimePtr(publishedAt)
	return p, nil
}
