package monitor

import "time"

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

var severity = map[string]int{
	StatusHealthy:  0,
	StatusDegraded: 1,
	StatusDown:     2,
}

// HealthCheck is one observation of a platform component.
type HealthCheck struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Component string    `json:"component"`
	Status    string    `json:"status"`
	LatencyMs *int      `json:"latencyMs"`
	Message   string    `json:"message"`
	CheckedAt time.Time `json:"checkedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// RunResult is the response of a probe run.
type RunResult struct {
	Overall string        `json:"overall"`
	Checks  []HealthCheck `json:"checks"`
}

// Worst returns the most severe of statuses, healthy when there are none.
func Worst(statuses ...string) string {
	worst := StatusHealthy
	for _, s := range statuses {
		if severity[s] > severity[worst] {
			worst = s
		}
	}
	return worst
}
