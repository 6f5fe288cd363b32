package skillgaps

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

const analysisColumns = `id, user_id, target_role, skills, readiness_score, recommendations, created_at, updated_at`

// Create inserts an analysis.
func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO skill_analyses (
    id,
    user_id,
    target_role,
    skills,
    readiness_score,
    recommendations,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	skills, recs, err := encodeAnalysis(a)
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, query, a.ID, a.UserID, a.TargetRole, skills, a.ReadinessScore, recs, a.CreatedAt, a.UpdatedAt); err != nil {
		return fmt.Errorf("insert skill analysis: %w", err)
	}
	return nil
}

// Get fetches an analysis by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM skill_analyses WHERE user_id = $1 AND id = $2`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, fmt.Errorf("get skill analysis: %w", err)
	}
	return a, nil
}

// List returns a user's analyses, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM skill_analyses
WHERE user_id = $1 AND ($2 = '' OR target_role ILIKE '%' || $2 || '%')
ORDER BY updated_at DESC
LIMIT $3 OFFSET $4`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.TargetRole, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list skill analyses: %w", err)
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update overwrites the analysis and its derived columns.
func (r *PGRepo) Update(ctx context.Context, a Analysis) error {
	const query = `
UPDATE skill_analyses
SET target_role = $3,
    skills = $4,
    readiness_score = $5,
    recommendations = $6,
    updated_at = $7
WHERE user_id = $1 AND id = $2`

	skills, recs, err := encodeAnalysis(a)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, query, a.UserID, a.ID, a.TargetRole, skills, a.ReadinessScore, recs, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update skill analysis: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes an analysis.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM skill_analyses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete skill analysis: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func encodeAnalysis(a Analysis) (skills, recs []byte, err error) {
	if skills, err = db.JSON(a.Skills, "[]"); err != nil {
		return nil, nil, err
	}
	if recs, err = db.JSON(a.Recommendations, "[]"); err != nil {
		return nil, nil, err
	}
	return skills, recs, nil
}

func scanAnalysis(s db.Scanner) (Analysis, error) {
	var a Analysis
	var skills, recs []byte
	if err := s.Scan(&a.ID, &a.UserID, &a.TargetRole, &skills, &a.ReadinessScore, &recs, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Analysis{}, err
	}
	if err := db.ScanJSON(skills, &a.Skills); err != nil {
		return Analysis{}, err
	}
	if err := db.ScanJSON(recs, &a.Recommendations); err != nil {
		return Analysis{}, err
	}
	if a.Skills == nil {
		a.Skills = []Skill{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []Recommendation{}
	}
	return a, nil
}
