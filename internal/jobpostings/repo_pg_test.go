package jobpostings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	salaryMin := int64(100)
	p := JobPosting{
		ID: "jp-1", UserID: "rec-1", Title: "Go Engineer", Company: "Initech",
		EmploymentType: DefaultEmploymentType, SalaryMin: &salaryMin, Requirements: []string{"Go"},
		Status: StatusPublished, PublishedAt: &now, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectExec("INSERT INTO job_postings").
		WithArgs("jp-1", "rec-1", "Go Engineer", "Initech", nil, "full-time", false, int64(100), nil, "", "", "{\"Go\"}", "published", now, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "company", "location", "employment_type", "remote", "salary_min", "salary_max", "description", "description_text", "requirements", "status", "published_at", "created_at", "updated_at"}).
		AddRow("jp-1", "rec-1", "Go Engineer", "Initech", nil, "full-time", true, int64(100), nil, "", "", "{Go,SQL}", "published", now, now, now)
	mock.ExpectQuery("FROM job_postings WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("rec-1", "jp-1").
		WillReturnRows(rows)
	got, err := repo.Get(context.Background(), "rec-1", "jp-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Remote || got.SalaryMax != nil || got.PublishedAt == nil || len(got.Requirements) != 2 {
		t.Fatalf("unexpected posting %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
