package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConsumeEnforcesPlanLimit(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(func() time.Time { return now })
	ctx := context.Background()

	u, err := svc.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Plan != PlanFree || u.Limit != 25 || u.Used != 0 {
		t.Fatalf("unexpected default usage %+v", u)
	}
	if !u.ResetsAt.Equal(now.Add(Window)) {
		t.Fatalf("expected 30 day window, got %s", u.ResetsAt)
	}

	for i := 0; i < 25; i++ {
		if _, err := svc.Consume(ctx, "u-1", 1); err != nil {
			t.Fatalf("consume %d: %v", i+1, err)
		}
	}
	if _, err := svc.Consume(ctx, "u-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}

	// Another user has an independent window.
	if _, err := svc.Consume(ctx, "u-2", 1); err != nil {
		t.Fatalf("expected other user to consume, got %v", err)
	}
}

func TestWindowRollsOver(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "u-1", 25); err != nil {
		t.Fatalf("consume: %v", err)
	}
	now = now.Add(Window)
	u, err := svc.Consume(ctx, "u-1", 1)
	if err != nil {
		t.Fatalf("expected new window, got %v", err)
	}
	if u.Used != 1 {
		t.Fatalf("expected used=1 after rollover, got %d", u.Used)
	}
}

func TestSetPlanRaisesLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "u-1", 25); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.SetPlan(ctx, "u-1", PlanPro)
	if err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	if u.Limit != 500 || u.Used != 25 {
		t.Fatalf("unexpected usage after upgrade %+v", u)
	}
	if _, err := svc.Consume(ctx, "u-1", 1); err != nil {
		t.Fatalf("consume after upgrade: %v", err)
	}
	if _, err := svc.SetPlan(ctx, "u-1", "platinum"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestConsumeReturnsLimitErrorWithSnapshot(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	if _, err := svc.Consume(ctx, "u-1", 25); err != nil {
		t.Fatalf("consume: %v", err)
	}
	_, err := svc.Consume(ctx, "u-1", 1)
	var le *LimitError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LimitError, got %T", err)
	}
	if le.Usage.Used != 25 || le.Usage.Limit != 25 {
		t.Fatalf("unexpected snapshot %+v", le.Usage)
	}
}

func TestRefundReturnsUnits(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "u-1", 25); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Refund(ctx, "u-1", 1)
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if u.Used != 24 {
		t.Fatalf("expected used=24 after refund, got %d", u.Used)
	}
	if _, err := svc.Consume(ctx, "u-1", 1); err != nil {
		t.Fatalf("expected refunded unit to be usable, got %v", err)
	}

	if u, _ := svc.Refund(ctx, "u-2", 3); u.Used != 0 {
		t.Fatalf("refund must not go below zero, got %d", u.Used)
	}
}
