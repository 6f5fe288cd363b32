package pipeline

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps candidates in process memory.
type MemoryRepo struct {
	table *memstore.Table[Candidate]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[Candidate]()}
}

func (r *MemoryRepo) Create(ctx context.Context, c Candidate) error {
	return mapErr(r.table.Put(ctx, c.UserID, c.ID, c))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Candidate, error) {
	c, err := r.table.Get(ctx, userID, id)
	return c, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Candidate, error) {
	keep := func(c Candidate) bool {
		return (f.Stage == "" || c.Stage == f.Stage) && (f.JobPostingID == "" || c.JobPostingID == f.JobPostingID)
	}
	return r.table.List(ctx, userID, keep, func(a, b Candidate) bool { return a.UpdatedAt.After(b.UpdatedAt) }, limit, offset)
}

func (r *MemoryRepo) Update(ctx context.Context, c Candidate) error {
	return mapErr(r.table.Replace(ctx, c.UserID, c.ID, c))
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	return mapErr(r.table.Delete(ctx, userID, id))
}

func (r *MemoryRepo) CountByStage(ctx context.Context, userID, jobPostingID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, c := range r.table.All(userID, func(c Candidate) bool { return jobPostingID == "" || c.JobPostingID == jobPostingID }) {
		counts[c.Stage]++
	}
	return counts, nil
}

func mapErr(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
