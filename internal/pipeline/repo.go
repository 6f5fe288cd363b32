package pipeline

import "context"

// Repo persists candidates, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, c Candidate) error
	Get(ctx context.Context, userID, id string) (Candidate, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]Candidate, error)
	Update(ctx context.Context, c Candidate) error
	Delete(ctx context.Context, userID, id string) error
	// CountByStage counts userID's candidates per stage, optionally for one posting.
	CountByStage(ctx context.Context, userID, jobPostingID string) (map[string]int, error)
}
