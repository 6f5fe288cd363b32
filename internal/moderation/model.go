package moderation

import "time"

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	StatusOpen      = "open"
	StatusReviewing = "reviewing"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

// ContentFlag marks a piece of user content for moderator review.
type ContentFlag struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ContentType string     `json:"contentType"`
	ContentID   string     `json:"contentId"`
	Reason      string     `json:"reason"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	Resolution  string     `json:"resolution"`
	ResolvedAt  *time.Time `json:"resolvedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// closed reports whether status ends the review.
func closed(status string) bool {
	return status == StatusResolved || status == StatusDismissed
}
