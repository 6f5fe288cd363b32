package resumes

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

const resumeColumns = `id, user_id, title, template, status, personal_info, experience, education, skills, source_file_name, source_storage_key, completeness, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    template,
    status,
    personal_info,
    experience,
    education,
    skills,
    source_file_name,
    source_storage_key,
    completeness,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	personal, experience, education, err := encodeSections(res)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.Title,
		res.Template,
		res.Status,
		personal,
		experience,
		education,
		pq.Array(res.Skills),
		db.NullString(res.SourceFileName),
		db.NullString(res.SourceStorageKey),
		res.Completeness,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// Get fetches a resume by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 AND id = $2`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("get resume: %w", err)
	}
	return res, nil
}

// List returns a user's resumes, most recently updated first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY updated_at DESC
LIMIT $3 OFFSET $4`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a resume.
func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	const query = `
UPDATE resumes
SET title = $3,
    template = $4,
    status = $5,
    personal_info = $6,
    experience = $7,
    education = $8,
    skills = $9,
    completeness = $10,
    updated_at = $11
WHERE user_id = $1 AND id = $2`

	personal, experience, education, err := encodeSections(res)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(
		ctx,
		query,
		res.UserID,
		res.ID,
		res.Title,
		res.Template,
		res.Status,
		personal,
		experience,
		education,
		pq.Array(res.Skills),
		res.Completeness,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

// Delete removes a resume.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return db.AffectedOne(result, ErrNotFound)
}

func scanResume(s db.Scanner) (Resume, error) {
	var res Resume
	var personal, experience, education []byte
	var skills pq.StringArray
	var sourceFile sql.NullString
	var sourceKey sql.NullString
	err := s.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Template,
		&res.Status,
		&personal,
		&experience,
		&education,
		&skills,
		&sourceFile,
		&sourceKey,
		&res.Completeness,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if err := db.ScanJSON(personal, &res.PersonalInfo); err != nil {
		return Resume{}, err
	}
	if err := db.ScanJSON(experience, &res.Experience); err != nil {
		return Resume{}, err
	}
	if err := db.ScanJSON(education, &res.Education); err != nil {
		return Resume{}, err
	}
	res.Skills = []string(skills)
	if sourceFile.Valid {
		res.SourceFileName = sourceFile.String
	}
	if sourceKey.Valid {
		res.SourceStorageKey = sourceKey.String
	}
	return normalize(res), nil
}

func encodeSections(res Resume) (personal, experience, education []byte, err error) {
	if personal, err = db.JSON(res.PersonalInfo, "{}"); err != nil {
		return nil, nil, nil, err
	}
	if experience, err = db.JSON(res.Experience, "[]"); err != nil {
		return nil, nil, nil, err
	}
	if education, err = db.JSON(res.Education, "[]"); err != nil {
		return nil, nil, nil, err
	}
	return personal, experience, education, nil
}
