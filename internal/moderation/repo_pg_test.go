package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "content_type", "content_id", "reason", "severity", "status", "notes", "resolution", "resolved_at", "created_at", "updated_at"}).
		AddRow("cf-1", "mod-1", "resume", "r-1", "pii", "high", "resolved", nil, "Redacted", now, now, now)
	mock.ExpectQuery("FROM content_flags").
		WithArgs("mod-1", "resolved", "", "", 20, 0).
		WillReturnRows(rows)

	items, err := (&PGRepo{DB: db}).List(context.Background(), "mod-1", ListFilter{Status: "resolved"}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ResolvedAt == nil || items[0].Resolution != "Redacted" || items[0].Notes != "" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
