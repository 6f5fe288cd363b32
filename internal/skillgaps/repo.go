package skillgaps

import "context"

// Repo persists skill analyses, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, a Analysis) error
	Get(ctx context.Context, userID, id string) (Analysis, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Analysis, error)
	Update(ctx context.Context, a Analysis) error
	Delete(ctx context.Context, userID, id string) error
}
