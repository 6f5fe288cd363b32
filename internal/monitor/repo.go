package monitor

import "context"

// Repo persists health checks, scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, hc HealthCheck) error
	Get(ctx context.Context, userID, id string) (HealthCheck, error)
	List(ctx context.Context, userID string, f ListFilter, limit, offset int) ([]HealthCheck, error)
	Delete(ctx context.Context, userID, id string) error
}
