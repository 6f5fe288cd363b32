package interactions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Interaction // userId -> interactions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Interaction)}
}

func (r *MemoryRepo) Create(ctx context.Context, it Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[it.UserID] = append(r.data[it.UserID], it)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Interaction, 0, len(r.data[userID]))
	for _, it := range r.data[userID] {
		if filter.Agent != "" && it.Agent != filter.Agent {
			continue
		}
		if filter.Action != "" && it.Action != filter.Action {
			continue
		}
		out = append(out, it)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Interaction{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
