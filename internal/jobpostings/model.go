package jobpostings

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"

	DefaultEmploymentType = "full-time"
)

// JobPosting is an open (or drafted, or closed) role owned by a recruiter.
type JobPosting struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location,omitempty"`
	EmploymentType  string     `json:"employmentType"`
	Remote          bool       `json:"remote"`
	SalaryMin       *int64     `json:"salaryMin"`
	SalaryMax       *int64     `json:"salaryMax"`
	Description     string     `json:"description"`
	DescriptionText string     `json:"descriptionText"`
	Requirements    []string   `json:"requirements"`
	Status          string     `json:"status"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
