package salary

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

const researchColumns = `id, user_id, job_title, location, years_experience, industry, currency, min_salary, max_salary, median_salary, percentiles, tips, created_at, updated_at`

// Create inserts a research record.
func (r *PGRepo) Create(ctx context.Context, res Research) error {
	const query = `
INSERT INTO salary_research (
    id,
    user_id,
    job_title,
    location,
    years_experience,
    industry,
    currency,
    min_salary,
    max_salary,
    median_salary,
    percentiles,
    tips,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	percentiles, err := encodePercentiles(res.Percentiles)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.JobTitle,
		res.Location,
		res.YearsExperience,
		db.NullString(res.Industry),
		res.Currency,
		db.NullInt64(res.MinSalary),
		db.NullInt64(res.MaxSalary),
		db.NullInt64(res.MedianSalary),
		percentiles,
		pq.Array(res.Tips),
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert salary research: %w", err)
	}
	return nil
}

// Get fetches a research record by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (Research, error) {
	query := `SELECT ` + researchColumns + ` FROM salary_research WHERE user_id = $1 AND id = $2`
	res, err := scanResearch(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Research{}, ErrNotFound
		}
		return Research{}, fmt.Errorf("get salary research: %w", err)
	}
	return res, nil
}

// List returns a user's research records, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Research, error) {
	query := `SELECT ` + researchColumns + `
FROM salary_research
WHERE user_id = $1
  AND ($2 = '' OR job_title ILIKE '%' || $2 || '%')
  AND ($3 = '' OR location ILIKE '%' || $3 || '%')
ORDER BY updated_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.JobTitle, f.Location, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list salary research: %w", err)
	}
	defer rows.Close()

	out := []Research{}
	for rows.Next() {
		res, err := scanResearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salary research: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a research record.
func (r *PGRepo) Update(ctx context.Context, res Research) error {
	const query = `
UPDATE salary_research
SET job_title = $3,
    location = $4,
    years_experience = $5,
    industry = $6,
    currency = $7,
    min_salary = $8,
    max_salary = $9,
    median_salary = $10,
    percentiles = $11,
    tips = $12,
    updated_at = $13
WHERE user_id = $1 AND id = $2`

	percentiles, err := encodePercentiles(res.Percentiles)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(
		ctx,
		query,
		res.UserID,
		res.ID,
		res.JobTitle,
		res.Location,
		res.YearsExperience,
		db.NullString(res.Industry),
		res.Currency,
		db.NullInt64(res.MinSalary),
		db.NullInt64(res.MaxSalary),
		db.NullInt64(res.MedianSalary),
		percentiles,
		pq.Array(res.Tips),
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update salary research: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a research record.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM salary_research WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete salary research: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func encodePercentiles(p *Percentiles) (any, error) {
	if p == nil {
		return nil, nil
	}
	return db.JSON(p, "null")
}

func scanResearch(s db.Scanner) (Research, error) {
	var res Research
	var industry sql.NullString
	var minSalary, maxSalary, medianSalary sql.NullInt64
	var percentiles []byte
	var tips pq.StringArray
	err := s.Scan(
		&res.ID,
		&res.UserID,
		&res.JobTitle,
		&res.Location,
		&res.YearsExperience,
		&industry,
		&res.Currency,
		&minSalary,
		&maxSalary,
		&medianSalary,
		&percentiles,
		&tips,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return Research{}, err
	}
	res.Industry = industry.String
	res.MinSalary = db.Int64Ptr(minSalary)
	res.MaxSalary = db.Int64Ptr(maxSalary)
	res.MedianSalary = db.Int64Ptr(medianSalary)
	if len(percentiles) > 0 {
		var p Percentiles
		if err := db.ScanJSON(percentiles, &p); err != nil {
			return Research{}, err
		}
		res.Percentiles = &p
	}
	res.Tips = []string(tips)
	if res.Tips == nil {
		res.Tips = []string{}
	}
	return res, nil
}
