package monitor

import "time"

// CreateRequest is the body of POST /health-checks.
type CreateRequest struct {
	Component string     `json:"component" binding:"required,max=100"`
	Status    string     `json:"status" binding:"required,oneof=healthy degraded down"`
	LatencyMs *int       `json:"latencyMs" binding:"omitnil,min=0"`
	Message   string     `json:"message" binding:"max=1000"`
	CheckedAt *time.Time `json:"checkedAt"`
}

// ListFilter narrows GET /health-checks.
type ListFilter struct {
	Component string
	Status    string
}
