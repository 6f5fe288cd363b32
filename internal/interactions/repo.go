package interactions

import "context"

// Repo persists interaction rows.
type Repo interface {
	Create(ctx context.Context, it Interaction) error
	ListByUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]Interaction, error)
}
