package skillgaps

import (
	"context"
	"errors"
	"strings"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps skill analyses in process memory.
type MemoryRepo struct {
	table *memstore.Table[Analysis]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[Analysis]()}
}

func (r *MemoryRepo) Create(ctx context.Context, a Analysis) error {
	return mapErr(r.table.Put(ctx, a.UserID, a.ID, a))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Analysis, error) {
	a, err := r.table.Get(ctx, userID, id)
	return a, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Analysis, error) {
	role := strings.ToLower(f.TargetRole)
	keep := func(a Analysis) bool { return role == "" || strings.Contains(strings.ToLower(a.TargetRole), role) }
	return r.table.List(ctx, userID, keep, func(a, b Analysis) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, a Analysis) error {
	return mapErr(r.table.Replace(ctx, a.UserID, a.ID, a))
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	return mapErr(r.table.Delete(ctx, userID, id))
}

func mapErr(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
