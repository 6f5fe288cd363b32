package moderation

import "context"

// Repo persists content flags, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, f ContentFlag) error
	Get(ctx context.Context, userID, id string) (ContentFlag, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]ContentFlag, error)
	Update(ctx context.Context, f ContentFlag) error
	Delete(ctx context.Context, userID, id string) error
}
