package auditlogs

import "context"

// Repo persists audit logs. There is no update or delete.
type Repo interface {
	// Create inserts entry. Inserting an existing id is a no-op.
	Create(ctx context.Context, entry AuditLog) error
	Get(ctx context.Context, userID, id string) (AuditLog, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]AuditLog, error)
}
