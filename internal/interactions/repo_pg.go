package interactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, it Interaction) error {
	const query = `
INSERT INTO interactions (id, user_id, agent, action, resource_type, resource_id, request_id, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	metadata, err := encodeMetadata(it.Metadata)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		it.ID,
		it.UserID,
		it.Agent,
		it.Action,
		it.ResourceType,
		it.ResourceID,
		it.RequestID,
		metadata,
		it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]Interaction, error) {
	const query = `
SELECT id, user_id, agent, action, resource_type, resource_id, request_id, metadata, created_at
FROM interactions
WHERE user_id = $1
  AND ($2 = '' OR agent = $2)
  AND ($3 = '' OR action = $3)
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`
	rows, err := r.DB.QueryContext(ctx, query, userID, filter.Agent, filter.Action, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	out := []Interaction{}
	for rows.Next() {
		var it Interaction
		var metadata []byte
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Agent,
			&it.Action,
			&it.ResourceType,
			&it.ResourceID,
			&it.RequestID,
			&metadata,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &it.Metadata); err != nil {
				return nil, fmt.Errorf("decode interaction metadata: %w", err)
			}
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func encodeMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode interaction metadata: %w", err)
	}
	return b, nil
}

var _ Repo = (*PGRepo)(nil)
