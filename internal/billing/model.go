package billing

import "time"

const (
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"

	CycleMonthly = "monthly"
	CycleYearly  = "yearly"

	InvoiceDraft = "draft"
	InvoiceOpen  = "open"
	InvoicePaid  = "paid"
	InvoiceVoid  = "void"

	DefaultCurrency = "USD"
)

// Subscription is a user's plan and billing terms.
type Subscription struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	Plan               string     `json:"plan"`
	Status             string     `json:"status"`
	BillingCycle       string     `json:"billingCycle"`
	Seats              int        `json:"seats"`
	AmountCents        int64      `json:"amountCents"`
	Currency           string     `json:"currency"`
	CurrentPeriodStart time.Time  `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool       `json:"cancelAtPeriodEnd"`
	CanceledAt         *time.Time `json:"canceledAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Invoice is one bill issued against a subscription.
type Invoice struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	SubscriptionID string     `json:"subscriptionId"`
	Number         string     `json:"number"`
	AmountCents    int64      `json:"amountCents"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	IssuedAt       time.Time  `json:"issuedAt"`
	DueAt          *time.Time `json:"dueAt"`
	PaidAt         *time.Time `json:"paidAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
