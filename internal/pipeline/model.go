package pipeline

import "time"

const (
	StageSourced   = "sourced"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

// Stages lists every pipeline stage in funnel order.
var Stages = []string{StageSourced, StageScreening, StageInterview, StageOffer, StageHired, StageRejected}

// Candidate is a person moving through a recruiter's pipeline.
type Candidate struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	JobPostingID   string    `json:"jobPostingId,omitempty"`
	Stage          string    `json:"stage"`
	Rating         *int      `json:"rating"`
	Tags           []string  `json:"tags"`
	Notes          string    `json:"notes,omitempty"`
	Source         string    `json:"source,omitempty"`
	StageChangedAt time.Time `json:"stageChangedAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Summary counts candidates per stage. Every stage key is always present.
type Summary struct {
	Total  int            `json:"total"`
	Stages map[string]int `json:"stages"`
}

func newSummary(counts map[string]int) Summary {
	s := Summary{Stages: make(map[string]int, len(Stages))}
	for _, stage := range Stages {
		n := counts[stage]
		s.Stages[stage] = n
		s.Total += n
	}
	return s
}
