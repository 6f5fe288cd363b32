package moderation

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps content flags in process memory.
type MemoryRepo struct {
	table *memstore.Table[ContentFlag]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[ContentFlag]()}
}

func (r *MemoryRepo) Create(ctx context.Context, f ContentFlag) error {
	return mapErr(r.table.Put(ctx, f.UserID, f.ID, f))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (ContentFlag, error) {
	f, err := r.table.Get(ctx, userID, id)
	return f, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, lf ListFilter, limit, offset int) ([]ContentFlag, error) {
	keep := func(f ContentFlag) bool {
		return (lf.Status == "" || f.Status == lf.Status) &&
			(lf.Severity == "" || f.Severity == lf.Severity) &&
			(lf.ContentType == "" || f.ContentType == lf.ContentType)
	}
	return r.table.List(ctx, userID, keep, func(a, b ContentFlag) bool { return a.CreatedAt.After(b.CreatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, f ContentFlag) error {
	return mapErr(r.table.Replace(ctx, f.UserID, f.ID, f))
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
