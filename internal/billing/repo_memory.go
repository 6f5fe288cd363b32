package billing

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemorySubscriptionRepo keeps subscriptions in process memory.
type MemorySubscriptionRepo struct {
	table *memstore.Table[Subscription]
}

// NewMemorySubscriptionRepo constructs an empty MemorySubscriptionRepo.
func NewMemorySubscriptionRepo() *MemorySubscriptionRepo {
	return &MemorySubscriptionRepo{table: memstore.NewTable[Subscription]()}
}

func (r *MemorySubscriptionRepo) Create(ctx context.Context, s Subscription) error {
	return mapErr(r.table.Put(ctx, s.UserID, s.ID, s), ErrSubscriptionNotFound)
}

func (r *MemorySubscriptionRepo) Get(ctx context.Context, userID, id string) (Subscription, error) {
	s, err := r.table.Get(ctx, userID, id)
	return s, mapErr(err, ErrSubscriptionNotFound)
}

func (r *MemorySubscriptionRepo) List(ctx context.Context, userID string, f SubscriptionFilter, limit, offset int) ([]Subscription, error) {
	keep := func(s Subscription) bool { return f.Status == "" || s.Status == f.Status }
	return r.table.List(ctx, userID, keep, func(a, b Subscription) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemorySubscriptionRepo) Update(ctx context.Context, s Subscription) error {
	return mapErr(r.table.Replace(ctx, s.UserID, s.ID, s), ErrSubscriptionNotFound)
}

func (r *MemorySubscriptionRepo) Delete(ctx context.Context, userID, id string) error {
	return mapErr(r.table.Delete(ctx, userID, id), ErrSubscriptionNotFound)
}

// MemoryInvoiceRepo keeps invoices in process memory.
type MemoryInvoiceRepo struct {
	table *memstore.Table[Invoice]
}

// NewMemoryInvoiceRepo constructs an empty MemoryInvoiceRepo.
func NewMemoryInvoiceRepo() *MemoryInvoiceRepo {
	return &MemoryInvoiceRepo{table: memstore.NewTable[Invoice]()}
}

func (r *MemoryInvoiceRepo) Create(ctx context.Context, inv Invoice) error {
	return mapErr(r.table.Put(ctx, inv.UserID, inv.ID, inv), ErrInvoiceNotFound)
}

func (r *MemoryInvoiceRepo) Get(ctx context.Context, userID, id string) (Invoice, error) {
	inv, err := r.table.Get(ctx, userID, id)
	return inv, mapErr(err, ErrInvoiceNotFound)
}

func (r *MemoryInvoiceRepo) List(ctx context.Context, userID string, f InvoiceFilter, limit, offset int) ([]Invoice, error) {
	keep := func(inv Invoice) bool {
		return (f.Status == "" || inv.Status == f.Status) && (f.SubscriptionID == "" || inv.SubscriptionID == f.SubscriptionID)
	}
	return r.table.List(ctx, userID, keep, func(a, b Invoice) bool { return a.IssuedAt.After(b.IssuedAt) }, limit, offset)
}

func (r *MemoryInvoiceRepo) Update(ctx context.Context, inv Invoice) error {
	return mapErr(r.table.Replace(ctx, inv.UserID, inv.ID, inv), ErrInvoiceNotFound)
}

func (r *MemoryInvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	return mapErr(r.table.Delete(ctx, userID, id), ErrInvoiceNotFound)
}

func mapErr(err, notFound error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return notFound
	}
	return err
}
