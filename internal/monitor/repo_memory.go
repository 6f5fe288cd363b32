package monitor

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps health checks in process memory.
type MemoryRepo struct {
	table *memstore.Table[HealthCheck]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[HealthCheck]()}
}

func (r *MemoryRepo) Create(ctx context.Context, hc HealthCheck) error {
	return mapErr(r.table.Put(ctx, hc.UserID, hc.ID, hc))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (HealthCheck, error) {
	hc, err := r.table.Get(ctx, userID, id)
	return hc, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]HealthCheck, error) {
	keep := func(hc HealthCheck) bool {
		return (f.Component == "" || hc.Component == f.Component) && (f.Status == "" || hc.Status == f.Status)
	}
	return r.table.List(ctx, userID, keep, func(a, b HealthCheck) bool { return a.CheckedAt.After(b.CheckedAt) }, limit, offset)
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
