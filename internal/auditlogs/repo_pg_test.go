package auditlogs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateIgnoresDuplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("ON CONFLICT \\(id\\) DO NOTHING").
		WithArgs("int-1", "u-1", "create", "resume-builder", nil, nil, "u-1", []byte(`{}`), nil, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	entry := AuditLog{ID: "int-1", UserID: "u-1", Action: "create", Agent: "resume-builder", ActorID: "u-1", CreatedAt: now}
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "agent", "entity_type", "entity_id", "actor_id", "details", "ip_address", "request_id", "created_at"}).
		AddRow("a-1", "u-1", "pay", "billing-manager", "invoice", "inv-1", "u-1", []byte(`{"amountCents":2900}`), nil, "req-9", now)
	mock.ExpectQuery("FROM audit_logs").
		WithArgs("u-1", "billing-manager", "", "", 50, 0).
		WillReturnRows(rows)

	items, err := (&PGRepo{DB: db}).List(context.Background(), "u-1", ListFilter{Agent: "billing-manager"}, 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Details["amountCents"] != float64(2900) || items[0].IPAddress != "" || items[0].RequestID != "req-9" {
		t.Fatalf("unexpected items %+v", items)
	}
}
