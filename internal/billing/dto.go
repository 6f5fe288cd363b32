package billing

import "time"

// CreateSubscriptionRequest is the body of POST /subscriptions.
type CreateSubscriptionRequest struct {
	Plan              string `json:"plan" binding:"required,oneof=free starter pro enterprise"`
	Status            string `json:"status" binding:"omitempty,oneof=trialing active past_due canceled"`
	BillingCycle      string `json:"billingCycle" binding:"omitempty,oneof=monthly yearly"`
	Seats             int    `json:"seats" binding:"omitempty,min=1,max=10000"`
	Currency          string `json:"currency" binding:"omitempty,len=3,uppercase"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
}

// UpdateSubscriptionRequest is the body of PUT /subscriptions/:id. Nil fields are left untouched.
type UpdateSubscriptionRequest struct {
	Plan              *string `json:"plan" binding:"omitnil,oneof=free starter pro enterprise"`
	Status            *string `json:"status" binding:"omitnil,oneof=trialing active past_due canceled"`
	BillingCycle      *string `json:"billingCycle" binding:"omitnil,oneof=monthly yearly"`
	Seats             *int    `json:"seats" binding:"omitnil,min=1,max=10000"`
	Currency          *string `json:"currency" binding:"omitnil,len=3,uppercase"`
	CancelAtPeriodEnd *bool   `json:"cancelAtPeriodEnd"`
}

// CancelRequest is the optional body of POST /subscriptions/:id/cancel.
type CancelRequest struct {
	Immediately bool `json:"immediately"`
}

// CreateInvoiceRequest is the body of POST /invoices. A missing amount or
// currency is taken from the subscription.
type CreateInvoiceRequest struct {
	SubscriptionID string     `json:"subscriptionId" binding:"required,max=64"`
	AmountCents    *int64     `json:"amountCents" binding:"omitnil,gt=0"`
	Currency       string     `json:"currency" binding:"omitempty,len=3,uppercase"`
	Status         string     `json:"status" binding:"omitempty,oneof=draft open paid void"`
	IssuedAt       *time.Time `json:"issuedAt"`
	DueAt          *time.Time `json:"dueAt"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:id. Nil fields are left untouched.
type UpdateInvoiceRequest struct {
	AmountCents *int64     `json:"amountCents" binding:"omitnil,gt=0"`
	Currency    *string    `json:"currency" binding:"omitnil,len=3,uppercase"`
	Status      *string    `json:"status" binding:"omitnil,oneof=draft open paid void"`
	DueAt       *time.Time `json:"dueAt"`
}

// SubscriptionFilter narrows GET /subscriptions.
type SubscriptionFilter struct {
	Status string
}

// InvoiceFilter narrows GET /invoices.
type InvoiceFilter struct {
	Status         string
	SubscriptionID string
}
