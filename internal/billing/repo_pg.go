package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recruitedge-api/internal/shared/storage/db"
)

// PGSubscriptionRepo implements SubscriptionRepo using Postgres.
type PGSubscriptionRepo struct {
	DB *sql.DB
}

const subscriptionColumns = `id, user_id, plan, status, billing_cycle, seats, amount_cents, currency, current_period_start, current_period_end, cancel_at_period_end, canceled_at, created_at, updated_at`

// Create inserts a subscription.
func (r *PGSubscriptionRepo) Create(ctx context.Context, s Subscription) error {
	const query = `
INSERT INTO subscriptions (
    id,
    user_id,
    plan,
    status,
    billing_cycle,
    seats,
    amount_cents,
    currency,
    current_period_start,
    current_period_end,
    cancel_at_period_end,
    canceled_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		s.ID,
		s.UserID,
		s.Plan,
		s.Status,
		s.BillingCycle,
		s.Seats,
		s.AmountCents,
		s.Currency,
		s.CurrentPeriodStart,
		s.CurrentPeriodEnd,
		s.CancelAtPeriodEnd,
		db.NullTime(s.CanceledAt),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// Get fetches a subscription by id for a user.
func (r *PGSubscriptionRepo) Get(ctx context.Context, userID, id string) (Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 AND id = $2`
	s, err := scanSubscription(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, ErrSubscriptionNotFound
		}
		return Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

// List returns a user's subscriptions, most recently updated first.
func (r *PGSubscriptionRepo) List(ctx context.Context, userID string, f SubscriptionFilter, limit, offset int) ([]Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
FROM subscriptions
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY updated_at DESC
LIMIT $3 OFFSET $4`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	out := []Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of a subscription.
func (r *PGSubscriptionRepo) Update(ctx context.Context, s Subscription) error {
	const query = `
UPDATE subscriptions
SET plan = $3,
    status = $4,
    billing_cycle = $5,
    seats = $6,
    amount_cents = $7,
    currency = $8,
    current_period_start = $9,
    current_period_end = $10,
    cancel_at_period_end = $11,
    canceled_at = $12,
    updated_at = $13
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		s.UserID,
		s.ID,
		s.Plan,
		s.Status,
		s.BillingCycle,
		s.Seats,
		s.AmountCents,
		s.Currency,
		s.CurrentPeriodStart,
		s.CurrentPeriodEnd,
		s.CancelAtPeriodEnd,
		db.NullTime(s.CanceledAt),
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return db.AffectedOne(result, ErrSubscriptionNotFound)
}

// Delete removes a subscription.
func (r *PGSubscriptionRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return db.AffectedOne(result, ErrSubscriptionNotFound)
}

func scanSubscription(sc db.Scanner) (Subscription, error) {
	var s Subscription
	var canceledAt sql.NullTime
	err := sc.Scan(
		&s.ID,
		&s.UserID,
		&s.Plan,
		&s.Status,
		&s.BillingCycle,
		&s.Seats,
		&s.AmountCents,
		&s.Currency,
		&s.CurrentPeriodStart,
		&s.CurrentPeriodEnd,
		&s.CancelAtPeriodEnd,
		&canceledAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Subscription{}, err
	}
	s.CanceledAt = db.TimePtr(canceledAt)
	return s, nil
}

// PGInvoiceRepo implements InvoiceRepo using Postgres.
type PGInvoiceRepo struct {
	DB *sql.DB
}

const invoiceColumns = `id, user_id, subscription_id, number, amount_cents, currency, status, issued_at, due_at, paid_at, created_at, updated_at`

// Create inserts an invoice.
func (r *PGInvoiceRepo) Create(ctx context.Context, inv Invoice) error {
	const query = `
INSERT INTO invoices (
    id,
    user_id,
    subscription_id,
    number,
    amount_cents,
    currency,
    status,
    issued_at,
    due_at,
    paid_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		inv.ID,
		inv.UserID,
		inv.SubscriptionID,
		inv.Number,
		inv.AmountCents,
		inv.Currency,
		inv.Status,
		inv.IssuedAt,
		db.NullTime(inv.DueAt),
		db.NullTime(inv.PaidAt),
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Get fetches an invoice by id for a user.
func (r *PGInvoiceRepo) Get(ctx context.Context, userID, id string) (Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND id = $2`
	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrInvoiceNotFound
		}
		return Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List returns a user's invoices, most recently issued first.
func (r *PGInvoiceRepo) List(ctx context.Context, userID string, f InvoiceFilter, limit, offset int) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
FROM invoices
WHERE user_id = $1 AND ($2 = '' OR status = $2) AND ($3 = '' OR subscription_id = $3)
ORDER BY issued_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Status, f.SubscriptionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := []Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns of an invoice.
func (r *PGInvoiceRepo) Update(ctx context.Context, inv Invoice) error {
	const query = `
UPDATE invoices
SET amount_cents = $3,
    currency = $4,
    status = $5,
    due_at = $6,
    paid_at = $7,
    updated_at = $8
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(
		ctx,
		query,
		inv.UserID,
		inv.ID,
		inv.AmountCents,
		inv.Currency,
		inv.Status,
		db.NullTime(inv.DueAt),
		db.NullTime(inv.PaidAt),
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return db.AffectedOne(result, ErrInvoiceNotFound)
}

// Delete removes an invoice.
func (r *PGInvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return db.AffectedOne(result, ErrInvoiceNotFound)
}

func scanInvoice(s db.Scanner) (Invoice, error) {
	var inv Invoice
	var dueAt, paidAt sql.NullTime
	err := s.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.SubscriptionID,
		&inv.Number,
		&inv.AmountCents,
		&inv.Currency,
		&inv.Status,
		&inv.IssuedAt,
		&dueAt,
		&paidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return Invoice{}, err
	}
	inv.DueAt = db.TimePtr(dueAt)
	inv.PaidAt = db.TimePtr(paidAt)
	return inv, nil
}
