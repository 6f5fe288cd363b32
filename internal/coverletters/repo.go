package coverletters

import "context"

// Repo persists cover letters, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, cl CoverLetter) error
	Get(ctx context.Context, userID, id string) (CoverLetter, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]CoverLetter, error)
	Update(ctx context.Context, cl CoverLetter) error
	Delete(ctx context.Context, userID, id string) error
}
