package coverletters

// CreateRequest is the body of POST /cover-letters.
type CreateRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Content      string `json:"content" binding:"required,max=20000"`
	Tone         string `json:"tone" binding:"omitempty,oneof=professional enthusiastic formal friendly confident"`
	CompanyName  string `json:"companyName" binding:"max=200"`
	JobTitle     string `json:"jobTitle" binding:"max=200"`
	JobPostingID string `json:"jobPostingId" binding:"max=64"`
	ResumeID     string `json:"resumeId" binding:"max=64"`
	Status       string `json:"status" binding:"omitempty,oneof=draft final"`
}

// UpdateRequest is the body of PUT /cover-letters/:id. Nil fields are left untouched.
type UpdateRequest struct {
	Title        *string `json:"title" binding:"omitnil,min=1,max=200"`
	Content      *string `json:"content" binding:"omitnil,min=1,max=20000"`
	Tone         *string `json:"tone" binding:"omitnil,oneof=professional enthusiastic formal friendly confident"`
	CompanyName  *string `json:"companyName" binding:"omitnil,max=200"`
	JobTitle     *string `json:"jobTitle" binding:"omitnil,max=200"`
	JobPostingID *string `json:"jobPostingId" binding:"omitnil,max=64"`
	ResumeID     *string `json:"resumeId" binding:"omitnil,max=64"`
	Status       *string `json:"status" binding:"omitnil,oneof=draft final"`
}

// GenerateRequest is the body of POST /cover-letters/generate.
type GenerateRequest struct {
	Title         string   `json:"title" binding:"max=200"`
	CompanyName   string   `json:"companyName" binding:"max=200"`
	JobTitle      string   `json:"jobTitle" binding:"required,max=200"`
	Tone          string   `json:"tone" binding:"omitempty,oneof=professional enthusiastic formal friendly confident"`
	ApplicantName string   `json:"applicantName" binding:"max=200"`
	Highlights    []string `json:"highlights" binding:"max=10,dive,max=500"`
	ResumeID      string   `json:"resumeId" binding:"max=64"`
	JobPostingID  string   `json:"jobPostingId" binding:"max=64"`
}

// ListFilter narrows GET /cover-letters.
type ListFilter struct {
	Status string
	Tone   string
}

func (r CreateRequest) toLetter() CoverLetter {
	cl := CoverLetter{
		Title:        r.Title,
		Content:      r.Content,
		Tone:         r.Tone,
		CompanyName:  r.CompanyName,
		JobTitle:     r.JobTitle,
		JobPostingID: r.JobPostingID,
		ResumeID:     r.ResumeID,
		Status:       r.Status,
	}
	if cl.Tone == "" {
		cl.Tone = DefaultTone
	}
	if cl.Status == "" {
		cl.Status = StatusDraft
	}
	return cl
}

func (r UpdateRequest) apply(cl *CoverLetter) {
	if r.Title != nil {
		cl.Title = *r.Title
	}
	if r.Content != nil {
		cl.Content = *r.Content
	}
	if r.Tone != nil {
		cl.Tone = *r.Tone
	}
	if r.CompanyName != nil {
		cl.CompanyName = *r.CompanyName
	}
	if r.JobTitle != nil {
		cl.JobTitle = *r.JobTitle
	}
	if r.JobPostingID != nil {
		cl.JobPostingID = *r.JobPostingID
	}
	if r.ResumeID != nil {
		cl.ResumeID = *r.ResumeID
	}
	if r.Status != nil {
		cl.Status = *r.Status
	}
}
