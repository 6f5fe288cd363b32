package skillgaps

// CreateRequest is the body of POST /skill-analyses.
type CreateRequest struct {
	TargetRole string  `json:"targetRole" binding:"required,max=200"`
	Skills     []Skill `json:"skills" binding:"required,min=1,max=50,dive"`
}

// UpdateRequest is the body of PUT /skill-analyses/:id. Nil fields are left untouched.
type UpdateRequest struct {
	TargetRole *string  `json:"targetRole" binding:"omitnil,min=1,max=200"`
	Skills     *[]Skill `json:"skills" binding:"omitnil,min=1,max=50,dive"`
}

// ListFilter narrows GET /skill-analyses.
type ListFilter struct {
	TargetRole string
}

func (r UpdateRequest) apply(a *Analysis) {
	if r.TargetRole != nil {
		a.TargetRole = *r.TargetRole
	}
	if r.Skills != nil {
		a.Skills = *r.Skills
	}
}
