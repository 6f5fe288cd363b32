package auditlogs

import (
	"context"
	"errors"

	"recruitedge-api/internal/shared/storage/memstore"
)

// MemoryRepo keeps audit logs in process memory.
type MemoryRepo struct {
	table *memstore.Table[AuditLog]
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{table: memstore.NewTable[AuditLog]()}
}

func (r *MemoryRepo) Create(ctx context.Context, entry AuditLog) error {
	if _, err := r.table.Get(ctx, entry.UserID, entry.ID); err == nil {
		return nil
	}
	return mapErr(r.table.Put(ctx, entry.UserID, entry.ID, entry))
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (AuditLog, error) {
	entry, err := r.table.Get(ctx, userID, id)
	return entry, mapErr(err)
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]AuditLog, error) {
	keep := func(a AuditLog) bool {
		return (f.Agent == "" || a.Agent == f.Agent) &&
			(f.Action == "" || a.Action == f.Action) &&
			(f.EntityType == "" || a.EntityType == f.EntityType)
	}
	return r.table.List(ctx, userID, keep, func(a, b AuditLog) bool { return a.CreatedAt.After(b.CreatedAt) }, limit, offset)
}

func mapErr(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
