package interactions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	it := Interaction{
		ID:           "i-1",
		UserID:       "u-1",
		Agent:        "job-posting-manager",
		Action:       ActionCreate,
		ResourceType: "job_posting",
		ResourceID:   "jp-1",
		RequestID:    "req-1",
		CreatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO interactions").
		WithArgs(it.ID, it.UserID, it.Agent, it.Action, it.ResourceType, it.ResourceID, it.RequestID, []byte("{}"), now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Create(context.Background(), it); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "agent", "action", "resource_type", "resource_id", "request_id", "metadata", "created_at"}).
		AddRow("i-1", "u-1", "job-posting-manager", "create", "job_posting", "jp-1", "req-1", []byte(`{"status":"draft"}`), now)
	mock.ExpectQuery("FROM interactions").
		WithArgs("u-1", "job-posting-manager", "", 20, 0).
		WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), "u-1", Filter{Agent: "job-posting-manager"}, 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || items[0].Metadata["status"] != "draft" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
