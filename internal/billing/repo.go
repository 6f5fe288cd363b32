package billing

import "context"

// SubscriptionRepo persists subscriptions, scoped to the owning user.
type SubscriptionRepo interface {
	Create(ctx context.Context, s Subscription) error
	Get(ctx context.Context, userID, id string) (Subscription, error)
	List(ctx context.Context, userID string, f SubscriptionFilter, limit, offset int) ([]Subscription, error)
	Update(ctx context.Context, s Subscription) error
	Delete(ctx context.Context, userID, id string) error
}

// InvoiceRepo persists invoices, scoped to the owning user.
type InvoiceRepo interface {
	Create(ctx context.Context, inv Invoice) error
	Get(ctx context.Context, userID, id string) (Invoice, error)
	List(ctx context.Context, userID string, f InvoiceFilter, limit, offset int) ([]Invoice, error)
	Update(ctx context.Context, inv Invoice) error
	Delete(ctx context.Context, userID, id string) error
}
