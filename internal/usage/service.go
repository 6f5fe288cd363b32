package usage

import (
	"context"
	"errors"
	"time"

	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/telemetry"
)

type store interface {
	Get(ctx context.Context, userID string) (Usage, error)
	Consume(ctx context.Context, userID string, n int) (Usage, error)
	Refund(ctx context.Context, userID string, n int) (Usage, error)
	SetPlan(ctx context.Context, userID, plan string) (Usage, error)
	Reset(ctx context.Context, userID string) (Usage, error)
}

// Service meters usage units per user over a rolling window.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return NewServiceWithClock(func() time.Time { return time.Now().UTC() })
}

// NewServiceWithClock constructs an in-memory Service driven by now.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{store: newMemoryStore(now)}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the current usage for a user, initializing defaults if absent.
func (s *Service) Get(ctx context.Context, userID string) (Usage, error) {
	return s.store.Get(ctx, userID)
}

// Consume takes n units, failing with ErrLimitReached when the window is exhausted.
func (s *Service) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	u, err := s.store.Consume(ctx, userID, n)
	if errors.Is(err, ErrLimitReached) {
		metrics.IncUsageLimitReached()
		return u, &LimitError{Usage: u}
	}
	return u, err
}

// Refund gives back n units taken by Consume when the metered work failed.
// Used never drops below zero.
func (s *Service) Refund(ctx context.Context, userID string, n int) (Usage, error) {
	return s.store.Refund(ctx, userID, n)
}

// Release refunds n units after the metered work failed. It runs even when
// ctx is already canceled and logs instead of returning errors.
func (s *Service) Release(ctx context.Context, userID string, n int) {
	if _, err := s.Refund(context.WithoutCancel(ctx), userID, n); err != nil {
		telemetry.Error("usage.refund_failed", map[string]any{"user_id": userID, "units": n, "error": err.Error()})
	}
}

// SetPlan moves the user to plan, keeping units already used in the window.
func (s *Service) SetPlan(ctx context.Context, userID, plan string) (Usage, error) {
	if _, ok := PlanLimits[plan]; !ok {
		return Usage{}, ErrUnknownPlan
	}
	return s.store.SetPlan(ctx, userID, plan)
}

// Reset sets usage to zero and restarts the window.
func (s *Service) Reset(ctx context.Context, userID string) (Usage, error) {
	return s.store.Reset(ctx, userID)
}
