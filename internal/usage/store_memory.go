package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]Usage
	now  func() time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{data: make(map[string]Usage), now: now}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(userID), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(userID)
	if n <= 0 {
		return u, nil
	}
	if u.Used+n > u.Limit {
		return u, ErrLimitReached
	}
	u.Used += n
	s.data[userID] = u
	return u, nil
}

func (s *memoryStore) Refund(ctx context.Context, userID string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(userID)
	if n > 0 {
		u.Used = max(u.Used-n, 0)
		s.data[userID] = u
	}
	return u, nil
}

func (s *memoryStore) SetPlan(ctx context.Context, userID, plan string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(userID)
	u.Plan = plan
	u.Limit = LimitFor(plan)
	s.data[userID] = u
	return u, nil
}

func (s *memoryStore) Reset(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(userID)
	u.Used = 0
	u.ResetsAt = s.now().Add(Window)
	s.data[userID] = u
	return u, nil
}

func (s *memoryStore) ensureLocked(userID string) Usage {
	now := s.now()
	u, ok := s.data[userID]
	if !ok {
		u = freshUsage(PlanFree, now)
	}
	u, _ = roll(u, now)
	s.data[userID] = u
	return u
}
