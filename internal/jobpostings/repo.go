package jobpostings

import "context"

// Repo persists job postings, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, p JobPosting) error
	Get(ctx context.Context, userID, id string) (JobPosting, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]JobPosting, error)
	Update(ctx context.Context, p JobPosting) error
	Delete(ctx context.Context, userID, id string) error
}
