package resumes

import "context"

// Repo persists resumes. Every method is scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	Get(ctx context.Context, userID, id string) (Resume, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, userID, id string) error
}
