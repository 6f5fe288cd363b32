package interactions

import "time"

// Common actions recorded by agent services.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionAutosave = "autosave"
	ActionGenerate = "generate"
	ActionImport   = "import"
	ActionMove     = "move"
	ActionCancel   = "cancel"
	ActionPay      = "pay"
	ActionResolve  = "resolve"
	ActionRun      = "run"
)

// Interaction is one tracked agent mutation.
type Interaction struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Agent        string         `json:"agent"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	RequestID    string         `json:"requestId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Entry is what a service reports; the recorder fills in id, request id and time.
type Entry struct {
	UserID       string
	Agent        string
	Action       string
	ResourceType string
	ResourceID   string
	Metadata     map[string]any
}

// Filter narrows a history listing.
type Filter struct {
	Agent  string
	Action string
}
