package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
	"recruitedge-api/internal/shared/validation"
	"recruitedge-api/internal/usage"
)

const (
	subscriptionResource = "subscription"
	invoiceResource      = "invoice"
)

// Plans moves a user between usage plans.
type Plans interface {
	SetPlan(ctx context.Context, userID, plan string) (usage.Usage, error)
}

// Service contains business logic for subscriptions and invoices.
type Service struct {
	Subscriptions SubscriptionRepo
	Invoices      InvoiceRepo
	Plans         Plans
	Tracker       interactions.Tracker
}

// CreateSubscription starts a subscription for the current period and moves
// the caller onto its usage plan.
func (s *Service) CreateSubscription(ctx context.Context, userID string, req CreateSubscriptionRequest) (Subscription, error) {
	now := util.Now()
	sub := Subscription{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Plan:               req.Plan,
		Status:             req.Status,
		BillingCycle:       req.BillingCycle,
		Seats:              req.Seats,
		Currency:           req.Currency,
		CancelAtPeriodEnd:  req.CancelAtPeriodEnd,
		CurrentPeriodStart: now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if sub.Status == "" {
		sub.Status = SubscriptionActive
	}
	if sub.BillingCycle == "" {
		sub.BillingCycle = CycleMonthly
	}
	if sub.Seats == 0 {
		sub.Seats = 1
	}
	if sub.Currency == "" {
		sub.Currency = DefaultCurrency
	}
	if sub.Status == SubscriptionCanceled {
		sub.CanceledAt = &now
	}
	sub.AmountCents = Amount(sub.Plan, sub.BillingCycle, sub.Seats)
	sub.CurrentPeriodEnd = PeriodEnd(now, sub.BillingCycle)

	if err := s.Subscriptions.Create(ctx, sub); err != nil {
		return Subscription{}, err
	}
	if sub.Status != SubscriptionCanceled {
		if err := s.setPlan(ctx, userID, sub.Plan); err != nil {
			return Subscription{}, err
		}
	}
	s.track(ctx, userID, interactions.ActionCreate, subscriptionResource, sub.ID, map[string]any{"plan": sub.Plan, "seats": sub.Seats})
	return sub, nil
}

// GetSubscription returns one of userID's subscriptions.
func (s *Service) GetSubscription(ctx context.Context, userID, id string) (Subscription, error) {
	return s.Subscriptions.Get(ctx, userID, id)
}

// ListSubscriptions returns a page of userID's subscriptions.
func (s *Service) ListSubscriptions(ctx context.Context, userID string, f SubscriptionFilter, p paging.Page) ([]Subscription, error) {
	return s.Subscriptions.List(ctx, userID, f, p.Limit, p.Offset)
}

// UpdateSubscription applies the supplied fields and reprices the
// subscription. Plan and status changes are mirrored onto the usage meter.
func (s *Service) UpdateSubscription(ctx context.Context, userID, id string, req UpdateSubscriptionRequest) (Subscription, error) {
	sub, err := s.Subscriptions.Get(ctx, userID, id)
	if err != nil {
		return Subscription{}, err
	}
	prevPlan, prevCycle, prevStatus := sub.Plan, sub.BillingCycle, sub.Status
	if req.Plan != nil {
		sub.Plan = *req.Plan
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}
	if req.Seats != nil {
		sub.Seats = *req.Seats
	}
	if req.Currency != nil {
		sub.Currency = *req.Currency
	}
	if req.CancelAtPeriodEnd != nil {
		sub.CancelAtPeriodEnd = *req.CancelAtPeriodEnd
	}

	sub.UpdatedAt = util.NextTimestamp(sub.UpdatedAt)
	sub.AmountCents = Amount(sub.Plan, sub.BillingCycle, sub.Seats)
	if sub.BillingCycle != prevCycle {
		sub.CurrentPeriodEnd = PeriodEnd(sub.CurrentPeriodStart, sub.BillingCycle)
	}
	switch {
	case sub.Status == SubscriptionCanceled && prevStatus != SubscriptionCanceled:
		canceled := sub.UpdatedAt
		sub.CanceledAt = &canceled
	case sub.Status != SubscriptionCanceled:
		sub.CanceledAt = nil
	}

	if err := s.Subscriptions.Update(ctx, sub); err != nil {
		return Subscription{}, err
	}
	if sub.Plan != prevPlan || sub.Status != prevStatus {
		if err := s.syncPlan(ctx, userID); err != nil {
			return Subscription{}, err
		}
	}
	s.track(ctx, userID, interactions.ActionUpdate, subscriptionResource, sub.ID, map[string]any{"plan": sub.Plan, "status": sub.Status})
	return sub, nil
}

// CancelSubscription schedules cancellation at the period end, or cancels
// right away and drops the caller back to the free plan. Canceling a
// canceled subscription returns it unchanged.
func (s *Service) CancelSubscription(ctx context.Context, userID, id string, immediately bool) (Subscription, error) {
	sub, err := s.Subscriptions.Get(ctx, userID, id)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Status == SubscriptionCanceled {
		return sub, nil
	}
	sub.UpdatedAt = util.NextTimestamp(sub.UpdatedAt)
	if immediately {
		canceled := sub.UpdatedAt
		sub.Status = SubscriptionCanceled
		sub.CanceledAt = &canceled
		sub.CancelAtPeriodEnd = false
	} else {
		sub.CancelAtPeriodEnd = true
	}
	if err := s.Subscriptions.Update(ctx, sub); err != nil {
		return Subscription{}, err
	}
	if immediately {
		if err := s.syncPlan(ctx, userID); err != nil {
			return Subscription{}, err
		}
	}
	s.track(ctx, userID, interactions.ActionCancel, subscriptionResource, sub.ID, map[string]any{"immediately": immediately})
	return sub, nil
}

// DeleteSubscription removes one of userID's subscriptions and moves the
// caller onto whichever plan is still live.
func (s *Service) DeleteSubscription(ctx context.Context, userID, id string) error {
	if err := s.Subscriptions.Delete(ctx, userID, id); err != nil {
		return err
	}
	if err := s.syncPlan(ctx, userID); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, subscriptionResource, id, nil)
	return nil
}

// CreateInvoice issues an invoice against one of the caller's subscriptions.
func (s *Service) CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (Invoice, error) {
	sub, err := s.Subscriptions.Get(ctx, userID, req.SubscriptionID)
	if errors.Is(err, ErrSubscriptionNotFound) {
		return Invoice{}, validation.Invalid("subscriptionId", "must reference one of your subscriptions")
	}
	if err != nil {
		return Invoice{}, fmt.Errorf("load subscription: %w", err)
	}

	now := util.Now()
	inv := Invoice{
		ID:             uuid.NewString(),
		UserID:         userID,
		SubscriptionID: sub.ID,
		AmountCents:    sub.AmountCents,
		Currency:       req.Currency,
		Status:         req.Status,
		IssuedAt:       now,
		DueAt:          req.DueAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.AmountCents != nil {
		inv.AmountCents = *req.AmountCents
	}
	if inv.AmountCents <= 0 {
		return Invoice{}, validation.Invalid("amountCents", "must be greater than 0")
	}
	if inv.Currency == "" {
		inv.Currency = sub.Currency
	}
	if inv.Status == "" {
		inv.Status = InvoiceOpen
	}
	if req.IssuedAt != nil {
		inv.IssuedAt = req.IssuedAt.UTC()
	}
	if inv.DueAt == nil {
		due := inv.IssuedAt.Add(invoiceDueAfter)
		inv.DueAt = &due
	}
	if inv.DueAt.Before(inv.IssuedAt) {
		return Invoice{}, validation.Invalid("dueAt", "must not be before issuedAt")
	}
	if inv.Status == InvoicePaid {
		inv.PaidAt = &now
	}
	inv.Number = InvoiceNumber(inv.IssuedAt)

	if err := s.Invoices.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, invoiceResource, inv.ID, map[string]any{"number": inv.Number, "amountCents": inv.AmountCents})
	return inv, nil
}

// GetInvoice returns one of userID's invoices.
func (s *Service) GetInvoice(ctx context.Context, userID, id string) (Invoice, error) {
	return s.Invoices.Get(ctx, userID, id)
}

// ListInvoices returns a page of userID's invoices.
func (s *Service) ListInvoices(ctx context.Context, userID string, f InvoiceFilter, p paging.Page) ([]Invoice, error) {
	return s.Invoices.List(ctx, userID, f, p.Limit, p.Offset)
}

// UpdateInvoice applies the supplied fields. paidAt follows the status.
func (s *Service) UpdateInvoice(ctx context.Context, userID, id string, req UpdateInvoiceRequest) (Invoice, error) {
	inv, err := s.Invoices.Get(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	if req.AmountCents != nil {
		inv.AmountCents = *req.AmountCents
	}
	if req.Currency != nil {
		inv.Currency = *req.Currency
	}
	if req.Status != nil {
		inv.Status = *req.Status
	}
	if req.DueAt != nil {
		due := req.DueAt.UTC()
		inv.DueAt = &due
	}
	if inv.DueAt != nil && inv.DueAt.Before(inv.IssuedAt) {
		return Invoice{}, validation.Invalid("dueAt", "must not be before issuedAt")
	}
	inv.UpdatedAt = util.NextTimestamp(inv.UpdatedAt)
	stampPaid(&inv, inv.UpdatedAt)

	if err := s.Invoices.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, invoiceResource, inv.ID, map[string]any{"status": inv.Status})
	return inv, nil
}

// PayInvoice marks an invoice paid. Paying a paid invoice returns it unchanged.
func (s *Service) PayInvoice(ctx context.Context, userID, id string) (Invoice, error) {
	inv, err := s.Invoices.Get(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	switch inv.Status {
	case InvoicePaid:
		return inv, nil
	case InvoiceVoid:
		return Invoice{}, validation.Invalid("status", "void invoices cannot be paid")
	}
	inv.Status = InvoicePaid
	inv.UpdatedAt = util.NextTimestamp(inv.UpdatedAt)
	stampPaid(&inv, inv.UpdatedAt)
	if err := s.Invoices.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.track(ctx, userID, interactions.ActionPay, invoiceResource, inv.ID, map[string]any{"amountCents": inv.AmountCents})
	return inv, nil
}

// DeleteInvoice removes one of userID's invoices.
func (s *Service) DeleteInvoice(ctx context.Context, userID, id string) error {
	if err := s.Invoices.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, invoiceResource, id, nil)
	return nil
}

func stampPaid(inv *Invoice, at time.Time) {
	if inv.Status != InvoicePaid {
		inv.PaidAt = nil
		return
	}
	if inv.PaidAt == nil {
		paid := at
		inv.PaidAt = &paid
	}
}

// syncPlan puts userID on the plan of their most recently updated live
// subscription, or on the free plan when none is left.
func (s *Service) syncPlan(ctx context.Context, userID string) error {
	if s.Plans == nil {
		return nil
	}
	subs, err := s.Subscriptions.List(ctx, userID, SubscriptionFilter{}, paging.MaxLimit, 0)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	plan := usage.PlanFree
	for _, sub := range subs {
		if sub.Status != SubscriptionCanceled {
			plan = sub.Plan
			break
		}
	}
	return s.setPlan(ctx, userID, plan)
}

func (s *Service) setPlan(ctx context.Context, userID, plan string) error {
	if s.Plans == nil {
		return nil
	}
	if _, err := s.Plans.SetPlan(ctx, userID, plan); err != nil {
		return fmt.Errorf("set usage plan: %w", err)
	}
	return nil
}

func (s *Service) track(ctx context.Context, userID, action, resourceType, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.BillingManager,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
