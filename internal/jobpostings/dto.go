package jobpostings

// CreateRequest is the body of POST /job-postings.
type CreateRequest struct {
	Title          string   `json:"title" binding:"required,max=200"`
	Company        string   `json:"company" binding:"required,max=200"`
	Location       string   `json:"location" binding:"max=200"`
	EmploymentType string   `json:"employmentType" binding:"omitempty,oneof=full-time part-time contract internship temporary"`
	Remote         bool     `json:"remote"`
	SalaryMin      *int64   `json:"salaryMin" binding:"omitnil,min=0"`
	SalaryMax      *int64   `json:"salaryMax" binding:"omitnil,min=0"`
	Description    string   `json:"description" binding:"max=50000"`
	Requirements   []string `json:"requirements" binding:"max=50,dive,min=1,max=500"`
	Status         string   `json:"status" binding:"omitempty,oneof=draft published closed"`
}

// UpdateRequest is the body of PUT /job-postings/:id. Nil fields are left untouched.
type UpdateRequest struct {
	Title          *string   `json:"title" binding:"omitnil,min=1,max=200"`
	Company        *string   `json:"company" binding:"omitnil,min=1,max=200"`
	Location       *string   `json:"location" binding:"omitnil,max=200"`
	EmploymentType *string   `json:"employmentType" binding:"omitnil,oneof=full-time part-time contract internship temporary"`
	Remote         *bool     `json:"remote"`
	SalaryMin      *int64    `json:"salaryMin" binding:"omitnil,min=0"`
	SalaryMax      *int64    `json:"salaryMax" binding:"omitnil,min=0"`
	Description    *string   `json:"description" binding:"omitnil,max=50000"`
	Requirements   *[]string `json:"requirements" binding:"omitnil,max=50,dive,min=1,max=500"`
	Status         *string   `json:"status" binding:"omitnil,oneof=draft published closed"`
}

// ListFilter narrows GET /job-postings.
type ListFilter struct {
	Status         string
	EmploymentType string
}

func (r CreateRequest) toPosting() JobPosting {
	p := JobPosting{
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Remote:         r.Remote,
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Status:         r.Status,
	}
	if p.EmploymentType == "" {
		p.EmploymentType = DefaultEmploymentType
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Requirements == nil {
		p.Requirements = []string{}
	}
	return p
}

func (r UpdateRequest) apply(p *JobPosting) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Company != nil {
		p.Company = *r.Company
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.EmploymentType != nil {
		p.EmploymentType = *r.EmploymentType
	}
	if r.Remote != nil {
		p.Remote = *r.Remote
	}
	if r.SalaryMin != nil {
		p.SalaryMin = r.SalaryMin
	}
	if r.SalaryMax != nil {
		p.SalaryMax = r.SalaryMax
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Requirements != nil {
		p.Requirements = *r.Requirements
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if p.Requirements == nil {
		p.Requirements = []string{}
	}
}
