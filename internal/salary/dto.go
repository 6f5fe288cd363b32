package salary

// CreateRequest is the body of POST /salary-research.
type CreateRequest struct {
	JobTitle        string       `json:"jobTitle" binding:"required,max=200"`
	Location        string       `json:"location" binding:"required,max=200"`
	YearsExperience int          `json:"yearsExperience" binding:"min=0,max=60"`
	Industry        string       `json:"industry" binding:"max=100"`
	Currency        string       `json:"currency" binding:"omitempty,len=3,uppercase"`
	MinSalary       *int64       `json:"minSalary" binding:"omitnil,min=0"`
	MaxSalary       *int64       `json:"maxSalary" binding:"omitnil,min=0"`
	MedianSalary    *int64       `json:"medianSalary" binding:"omitnil,min=0"`
	Percentiles     *Percentiles `json:"percentiles"`
	Tips            []string     `json:"tips" binding:"max=20,dive,max=500"`
}

// UpdateRequest is the body of PUT /salary-research/:id. Nil fields are left untouched.
type UpdateRequest struct {
	JobTitle        *string      `json:"jobTitle" binding:"omitnil,min=1,max=200"`
	Location        *string      `json:"location" binding:"omitnil,min=1,max=200"`
	YearsExperience *int         `json:"yearsExperience" binding:"omitnil,min=0,max=60"`
	Industry        *string      `json:"industry" binding:"omitnil,max=100"`
	Currency        *string      `json:"currency" binding:"omitnil,len=3,uppercase"`
	MinSalary       *int64       `json:"minSalary" binding:"omitnil,min=0"`
	MaxSalary       *int64       `json:"maxSalary" binding:"omitnil,min=0"`
	MedianSalary    *int64       `json:"medianSalary" binding:"omitnil,min=0"`
	Percentiles     *Percentiles `json:"percentiles"`
	Tips            *[]string    `json:"tips" binding:"omitnil,max=20,dive,max=500"`
}

// GenerateRequest is the body of POST /salary-research/generate.
type GenerateRequest struct {
	JobTitle        string `json:"jobTitle" binding:"required,max=200"`
	Location        string `json:"location" binding:"required,max=200"`
	YearsExperience int    `json:"yearsExperience" binding:"min=0,max=60"`
	Industry        string `json:"industry" binding:"max=100"`
	Currency        string `json:"currency" binding:"omitempty,len=3,uppercase"`
}

// ListFilter narrows GET /salary-research.
type ListFilter struct {
	JobTitle string
	Location string
}

func (r CreateRequest) toResearch() Research {
	res := Research{
		JobTitle:        r.JobTitle,
		Location:        r.Location,
		YearsExperience: r.YearsExperience,
		Industry:        r.Industry,
		Currency:        r.Currency,
		MinSalary:       r.MinSalary,
		MaxSalary:       r.MaxSalary,
		MedianSalary:    r.MedianSalary,
		Percentiles:     r.Percentiles,
		Tips:            r.Tips,
	}
	if res.Currency == "" {
		res.Currency = DefaultCurrency
	}
	if res.Tips == nil {
		res.Tips = []string{}
	}
	return res
}

func (r UpdateRequest) apply(res *Research) {
	if r.JobTitle != nil {
		res.JobTitle = *r.JobTitle
	}
	if r.Location != nil {
		res.Location = *r.Location
	}
	if r.YearsExperience != nil {
		res.YearsExperience = *r.YearsExperience
	}
	if r.Industry != nil {
		res.Industry = *r.Industry
	}
	if r.Currency != nil {
		res.Currency = *r.Currency
	}
	if r.MinSalary != nil {
		res.MinSalary = r.MinSalary
	}
	if r.MaxSalary != nil {
		res.MaxSalary = r.MaxSalary
	}
	if r.MedianSalary != nil {
		res.MedianSalary = r.MedianSalary
	}
	if r.Percentiles != nil {
		res.Percentiles = r.Percentiles
	}
	if r.Tips != nil {
		res.Tips = *r.Tips
	}
	if res.Tips == nil {
		res.Tips = []string{}
	}
}
