package resumes

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps resumes in process memory.
type MemoryRepo struct {
	table *memstore.Table[Resume]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[Resume]()}
}

func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	return mapErr(r.table.Put(ctx, res.UserID, res.ID, res))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	res, err := r.table.Get(ctx, userID, id)
	return res, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Resume, error) {
	keep := func(res Resume) bool { return f.Status == "" || res.Status == f.Status }
	newest := func(a, b Resume) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	return r.table.List(ctx, userID, keep, newest, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, res Resume) error {
	return mapErr(r.table.Replace(ctx, res.UserID, res.ID, res))
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
