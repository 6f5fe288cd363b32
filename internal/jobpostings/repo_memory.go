package jobpostings

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps job postings in process memory.
type MemoryRepo struct {
	table *memstore.Table[JobPosting]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[JobPosting]()}
}

func (r *MemoryRepo) Create(ctx context.Context, p JobPosting) error {
	return mapErr(r.table.Put(ctx, p.UserID, p.ID, p))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (JobPosting, error) {
	p, err := r.table.Get(ctx, userID, id)
	return p, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]JobPosting, error) {
	keep := func(p JobPosting) bool {
		return (f.Status == "" || p.Status == f.Status) && (f.EmploymentType == "" || p.EmploymentType == f.EmploymentType)
	}
	return r.table.List(ctx, userID, keep, func(a, b JobPosting) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, p JobPosting) error {
	return mapErr(r.table.Replace(ctx, p.UserID, p.ID, p))
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
