package coverletters

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps cover letters in process memory.
type MemoryRepo struct {
	table *memstore.Table[CoverLetter]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[CoverLetter]()}
}

func (r *MemoryRepo) Create(ctx context.Context, cl CoverLetter) error {
	return mapErr(r.table.Put(ctx, cl.UserID, cl.ID, cl))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	cl, err := r.table.Get(ctx, userID, id)
	return cl, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]CoverLetter, error) {
	keep := func(cl CoverLetter) bool {
		return (f.Status == "" || cl.Status == f.Status) && (f.Tone == "" || cl.Tone == f.Tone)
	}
	return r.table.List(ctx, userID, keep, func(a, b CoverLetter) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, cl CoverLetter) error {
	return mapErr(r.table.Replace(ctx, cl.UserID, cl.ID, cl))
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
