package auditlogs

import "time"

// AuditLog is an append-only record of something that happened in the workspace.
type AuditLog struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Action     string         `json:"action"`
	Agent      string         `json:"agent"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	ActorID    string         `json:"actorId"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ipAddress"`
	RequestID  string         `json:"requestId"`
	CreatedAt  time.Time      `json:"createdAt"`
}
