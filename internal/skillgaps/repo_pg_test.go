package skillgaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoRoundTripsJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := derive(Analysis{ID: "a-1", UserID: "u-1", TargetRole: "SRE", Skills: []Skill{{Name: "Go", CurrentLevel: 1, RequiredLevel: 3}}, CreatedAt: now, UpdatedAt: now}, nil)

	mock.ExpectExec("INSERT INTO skill_analyses").
		WithArgs("a-1", "u-1", "SRE",
			[]byte(`[{"name":"Go","currentLevel":1,"requiredLevel":3,"gap":2,"priority":"medium"}]`),
			33,
			[]byte(`[{"skill":"Go","priority":"medium","actions":[]}]`),
			now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "target_role", "skills", "readiness_score", "recommendations", "created_at", "updated_at"}).
		AddRow("a-1", "u-1", "SRE", []byte(`[{"name":"Go","currentLevel":1,"requiredLevel":3,"gap":2,"priority":"medium"}]`), 33, nil, now, now)
	mock.ExpectQuery("FROM skill_analyses").WithArgs("u-1", "a-1").WillReturnRows(rows)
	got, err := repo.Get(context.Background(), "u-1", "a-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Skills) != 1 || got.Skills[0].Gap != 2 || got.Recommendations == nil {
		t.Fatalf("unexpected analysis %+v", got)
	}

	mock.ExpectExec("UPDATE skill_analyses").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Update(context.Background(), a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
