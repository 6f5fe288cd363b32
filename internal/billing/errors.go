package billing

import "errors"

var (
	// ErrSubscriptionNotFound indicates the subscription does not exist for the caller.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrInvoiceNotFound indicates the invoice does not exist for the caller.
	ErrInvoiceNotFound = errors.New("invoice not found")
)
