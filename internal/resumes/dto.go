package resumes

// CreateRequest is the body of POST /resumes.
type CreateRequest struct {
	Title        string        `json:"title" binding:"required,max=200"`
	Template     string        `json:"template" binding:"max=50"`
	Status       string        `json:"status" binding:"omitempty,oneof=draft complete"`
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	Experience   []Experience  `json:"experience" binding:"omitempty,dive"`
	Education    []Education   `json:"education" binding:"omitempty,dive"`
	Skills       []string      `json:"skills" binding:"omitempty,dive,min=1,max=100"`
}

// UpdateRequest is the body of PUT /resumes/:id and the autosave route.
// Nil fields are left untouched.
type UpdateRequest struct {
	Title        *string       `json:"title" binding:"omitnil,min=1,max=200"`
	Template     *string       `json:"template" binding:"omitnil,max=50"`
	Status       *string       `json:"status" binding:"omitnil,oneof=draft complete"`
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	Experience   *[]Experience `json:"experience" binding:"omitnil,dive"`
	Education    *[]Education  `json:"education" binding:"omitnil,dive"`
	Skills       *[]string     `json:"skills" binding:"omitnil,dive,min=1,max=100"`
}

// ListFilter narrows GET /resumes.
type ListFilter struct {
	Status string
}

// AutosaveResponse is returned by PUT /resumes/:id/autosave.
type AutosaveResponse struct {
	ID      string `json:"id"`
	SavedAt string `json:"savedAt"`
}

func (r CreateRequest) toResume() Resume {
	res := Resume{
		Title:      r.Title,
		Template:   r.Template,
		Status:     r.Status,
		Experience: r.Experience,
		Education:  r.Education,
		Skills:     r.Skills,
	}
	if r.PersonalInfo != nil {
		res.PersonalInfo = *r.PersonalInfo
	}
	if res.Status == "" {
		res.Status = StatusDraft
	}
	return res
}

func (r UpdateRequest) apply(res *Resume) {
	if r.Title != nil {
		res.Title = *r.Title
	}
	if r.Template != nil {
		res.Template = *r.Template
	}
	if r.Status != nil {
		res.Status = *r.Status
	}
	if r.PersonalInfo != nil {
		res.PersonalInfo = *r.PersonalInfo
	}
	if r.Experience != nil {
		res.Experience = *r.Experience
	}
	if r.Education != nil {
		res.Education = *r.Education
	}
	if r.Skills != nil {
		res.Skills = *r.Skills
	}
}
