package moderation

// CreateRequest is the body of POST /content-flags.
type CreateRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=resume cover_letter job_posting candidate_note other"`
	ContentID   string `json:"contentId" binding:"required,max=100"`
	Reason      string `json:"reason" binding:"required,oneof=spam inappropriate pii discriminatory other"`
	Severity    string `json:"severity" binding:"omitempty,oneof=low medium high"`
	Status      string `json:"status" binding:"omitempty,oneof=open reviewing resolved dismissed"`
	Notes       string `json:"notes" binding:"max=5000"`
}

// UpdateRequest is the body of PUT /content-flags/:id. Nil fields are left untouched.
type UpdateRequest struct {
	Reason     *string `json:"reason" binding:"omitnil,oneof=spam inappropriate pii discriminatory other"`
	Severity   *string `json:"severity" binding:"omitnil,oneof=low medium high"`
	Status     *string `json:"status" binding:"omitnil,oneof=open reviewing resolved dismissed"`
	Notes      *string `json:"notes" binding:"omitnil,max=5000"`
	Resolution *string `json:"resolution" binding:"omitnil,max=5000"`
}

// ResolveRequest is the body of POST /content-flags/:id/resolve.
type ResolveRequest struct {
	Resolution string `json:"resolution" binding:"required,max=5000"`
	Dismiss    bool   `json:"dismiss"`
}

// ListFilter narrows GET /content-flags.
type ListFilter struct {
	Status      string
	Severity    string
	ContentType string
}

func (r CreateRequest) toFlag() ContentFlag {
	f := ContentFlag{
		ContentType: r.ContentType,
		ContentID:   r.ContentID,
		Reason:      r.Reason,
		Severity:    r.Severity,
		Status:      r.Status,
		Notes:       r.Notes,
	}
	if f.Severity == "" {
		f.Severity = SeverityMedium
	}
	if f.Status == "" {
		f.Status = StatusOpen
	}
	return f
}

func (r UpdateRequest) apply(f *ContentFlag) {
	if r.Reason != nil {
		f.Reason = *r.Reason
	}
	if r.Severity != nil {
		f.Severity = *r.Severity
	}
	if r.Status != nil {
		f.Status = *r.Status
	}
	if r.Notes != nil {
		f.Notes = *r.Notes
	}
	if r.Resolution != nil {
		f.Resolution = *r.Resolution
	}
}
