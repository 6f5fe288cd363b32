package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreConsumeLocksRow(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewPGStore(database)
	store.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT plan, limit_amount, used, resets_at FROM usage WHERE user_id = \\$1 FOR UPDATE").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("starter", 100, 10, now.Add(24*time.Hour)))
	mock.ExpectExec("UPDATE usage SET used").
		WithArgs(11, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := store.Consume(context.Background(), "u-1", 1)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 11 || u.Plan != "starter" {
		t.Fatalf("unexpected usage %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeRejectsOverLimit(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewPGStore(database)
	store.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectQuery("FROM usage").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("free", 25, 25, now.Add(time.Hour)))
	mock.ExpectRollback()

	if _, err := store.Consume(context.Background(), "u-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreRefundClampsAtZero(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewPGStore(database)
	store.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectQuery("FROM usage").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("free", 25, 1, now.Add(time.Hour)))
	mock.ExpectExec("UPDATE usage SET used").
		WithArgs(0, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := store.Refund(context.Background(), "u-1", 2)
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("unexpected usage %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
