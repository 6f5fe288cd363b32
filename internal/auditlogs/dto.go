package auditlogs

// CreateRequest is the body of POST /audit-logs.
type CreateRequest struct {
	Action     string         `json:"action" binding:"required,max=100"`
	Agent      string         `json:"agent" binding:"max=100"`
	EntityType string         `json:"entityType" binding:"max=100"`
	EntityID   string         `json:"entityId" binding:"max=100"`
	ActorID    string         `json:"actorId" binding:"max=100"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ipAddress" binding:"omitempty,ip"`
	RequestID  string         `json:"requestId" binding:"max=100"`
}

// ListFilter narrows GET /audit-logs.
type ListFilter struct {
	Agent      string
	Action     string
	EntityType string
}
