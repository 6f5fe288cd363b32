package pipeline

// CreateRequest is the body of POST /candidates.
type CreateRequest struct {
	FullName     string   `json:"fullName" binding:"required,max=200"`
	Email        string   `json:"email" binding:"omitempty,email"`
	Phone        string   `json:"phone" binding:"max=50"`
	JobPostingID string   `json:"jobPostingId" binding:"max=64"`
	Stage        string   `json:"stage" binding:"omitempty,oneof=sourced screening interview offer hired rejected"`
	Rating       *int     `json:"rating" binding:"omitnil,min=0,max=5"`
	Tags         []string `json:"tags" binding:"max=30,dive,min=1,max=50"`
	Notes        string   `json:"notes" binding:"max=10000"`
	Source       string   `json:"source" binding:"max=100"`
}

// UpdateRequest is the body of PUT /candidates/:id. Nil fields are left untouched.
type UpdateRequest struct {
	FullName     *string   `json:"fullName" binding:"omitnil,min=1,max=200"`
	Email        *string   `json:"email" binding:"omitnil,omitempty,email"`
	Phone        *string   `json:"phone" binding:"omitnil,max=50"`
	JobPostingID *string   `json:"jobPostingId" binding:"omitnil,max=64"`
	Stage        *string   `json:"stage" binding:"omitnil,oneof=sourced screening interview offer hired rejected"`
	Rating       *int      `json:"rating" binding:"omitnil,min=0,max=5"`
	Tags         *[]string `json:"tags" binding:"omitnil,max=30,dive,min=1,max=50"`
	Notes        *string   `json:"notes" binding:"omitnil,max=10000"`
	Source       *string   `json:"source" binding:"omitnil,max=100"`
}

// StageRequest is the body of PUT /candidates/:id/stage.
type StageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=sourced screening interview offer hired rejected"`
}

// ListFilter narrows GET /candidates.
type ListFilter struct {
	Stage        string
	JobPostingID string
}

func (r CreateRequest) toCandidate() Candidate {
	c := Candidate{
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		JobPostingID: r.JobPostingID,
		Stage:        r.Stage,
		Rating:       r.Rating,
		Tags:         r.Tags,
		Notes:        r.Notes,
		Source:       r.Source,
	}
	if c.Stage == "" {
		c.Stage = StageSourced
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

func (r UpdateRequest) apply(c *Candidate) {
	if r.FullName != nil {
		c.FullName = *r.FullName
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.JobPostingID != nil {
		c.JobPostingID = *r.JobPostingID
	}
	if r.Stage != nil {
		c.Stage = *r.Stage
	}
	if r.Rating != nil {
		c.Rating = r.Rating
	}
	if r.Tags != nil {
		c.Tags = *r.Tags
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
	if r.Source != nil {
		c.Source = *r.Source
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}
