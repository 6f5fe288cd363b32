package salary

import "context"

// Repo persists salary research, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, r Research) error
	Get(ctx context.Context, userID, id string) (Research, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Research, error)
	Update(ctx context.Context, r Research) error
	Delete(ctx context.Context, userID, id string) error
}
