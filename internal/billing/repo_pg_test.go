package billing

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPGSubscriptionRepoGet(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "plan", "status", "billing_cycle", "seats", "amount_cents", "currency", "current_period_start", "current_period_end", "cancel_at_period_end", "canceled_at", "created_at", "updated_at"}).
		AddRow("sub-1", "admin-1", "pro", "canceled", "monthly", 2, int64(19800), "USD", now, now.AddDate(0, 1, 0), false, now, now, now)
	mock.ExpectQuery("FROM subscriptions WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("admin-1", "sub-1").
		WillReturnRows(rows)

	sub, err := (&PGSubscriptionRepo{DB: db}).Get(context.Background(), "admin-1", "sub-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sub.Seats != 2 || sub.AmountCents != 19800 || sub.CanceledAt == nil || !sub.CanceledAt.Equal(now) {
		t.Fatalf("unexpected subscription %+v", sub)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGSubscriptionRepoUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE subscriptions").WillReturnResult(sqlmock.NewResult(0, 0))

	err := (&PGSubscriptionRepo{DB: db}).Update(context.Background(), Subscription{ID: "missing", UserID: "admin-1"})
	if !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestPGInvoiceRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(invoiceDueAfter)
	inv := Invoice{ID: "inv-1", UserID: "admin-1", SubscriptionID: "sub-1", Number: "INV-202602-ABCDEF", AmountCents: 2900, Currency: "USD", Status: InvoiceOpen, IssuedAt: now, DueAt: &due, CreatedAt: now, UpdatedAt: now}
	mock.ExpectExec("INSERT INTO invoices").
		WithArgs("inv-1", "admin-1", "sub-1", "INV-202602-ABCDEF", int64(2900), "USD", "open", now, sql.NullTime{Time: due, Valid: true}, sql.NullTime{}, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGInvoiceRepo{DB: db}).Create(context.Background(), inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGInvoiceRepoGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM invoices").WithArgs("admin-1", "nope").WillReturnError(sql.ErrNoRows)

	if _, err := (&PGInvoiceRepo{DB: db}).Get(context.Background(), "admin-1", "nope"); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
