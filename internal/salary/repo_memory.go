package salary

import (
	"context"
	"errors"
	"strings"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps salary research in process memory.
type MemoryRepo struct {
	table *memstore.Table[Research]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[Research]()}
}

func (r *MemoryRepo) Create(ctx context.Context, res Research) error {
	return mapErr(r.table.Put(ctx, res.UserID, res.ID, res))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Research, error) {
	res, err := r.table.Get(ctx, userID, id)
	return res, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Research, error) {
	keep := func(res Research) bool {
		return matches(res.JobTitle, f.JobTitle) && matches(res.Location, f.Location)
	}
	return r.table.List(ctx, userID, keep, func(a, b Research) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, res Research) error {
	return mapErr(r.table.Replace(ctx, res.UserID, res.ID, res))
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	return mapErr(r.table.Delete(ctx, userID, id))
}

// matches mirrors the case-insensitive substring filter of the PG repo.
func matches(value, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

func mapErr(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
