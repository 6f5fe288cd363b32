package coverletters

import "time"

const (
	StatusDraft = "draft"
	StatusFinal = "final"

	DefaultTone = "professional"
)

// CoverLetter is a letter written for one application.
type CoverLetter struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Tone         string    `json:"tone"`
	CompanyName  string    `json:"companyName,omitempty"`
	JobTitle     string    `json:"jobTitle,omitempty"`
	JobPostingID string    `json:"jobPostingId,omitempty"`
	ResumeID     string    `json:"resumeId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
