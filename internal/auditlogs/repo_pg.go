package auditlogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recruitedge-api/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const auditColumns = `id, user_id, action, agent, entity_type, entity_id, actor_id, details, ip_address, request_id, created_at`

// Create inserts an audit log entry. Redelivered events keep the first row.
func (r *PGRepo) Create(ctx context.Context, entry AuditLog) error {
	const query = `
INSERT INTO audit_logs (
    id,
    user_id,
    action,
    agent,
    entity_type,
    entity_id,
    actor_id,
    details,
    ip_address,
    request_id,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO NOTHING`

	details, err := db.JSON(entry.Details, "{}")
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Action,
		db.NullString(entry.Agent),
		db.NullString(entry.EntityType),
		db.NullString(entry.EntityID),
		db.NullString(entry.ActorID),
		details,
		db.NullString(entry.IPAddress),
		db.NullString(entry.RequestID),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// Get fetches an audit log entry by id for a user.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE user_id = $1 AND id = $2`
	entry, err := scanAuditLog(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuditLog{}, ErrNotFound
		}
		return AuditLog{}, fmt.Errorf("get audit log: %w", err)
	}
	return entry, nil
}

// List returns a user's audit log, newest first.
func (r *PGRepo) List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]AuditLog, error) {
	query := `SELECT ` + auditColumns + `
FROM audit_logs
WHERE user_id = $1
  AND ($2 = '' OR agent = $2)
  AND ($3 = '' OR action = $3)
  AND ($4 = '' OR entity_type = $4)
ORDER BY created_at DESC
LIMIT $5 OFFSET $6`
	rows, err := r.DB.QueryContext(ctx, query, userID, f.Agent, f.Action, f.EntityType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	out := []AuditLog{}
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanAuditLog(s db.Scanner) (AuditLog, error) {
	var entry AuditLog
	var agent, entityType, entityID, actorID, ip, requestID sql.NullString
	var details []byte
	err := s.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Action,
		&agent,
		&entityType,
		&entityID,
		&actorID,
		&details,
		&ip,
		&requestID,
		&entry.CreatedAt,
	)
	if err != nil {
		return AuditLog{}, err
	}
	entry.Agent = agent.String
	entry.EntityType = entityType.String
	entry.EntityID = entityID.String
	entry.ActorID = actorID.String
	entry.IPAddress = ip.String
	entry.RequestID = requestID.String
	if err := db.ScanJSON(details, &entry.Details); err != nil {
		return AuditLog{}, fmt.Errorf("decode audit details: %w", err)
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	return entry, nil
}
