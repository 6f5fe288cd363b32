package coverletters

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/mockai"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
	"recruitedge-api/internal/usage"
)

const resourceType = "cover_letter"

// Service contains business logic for cover letters.
type Service struct {
	Repo    Repo
	AI      *mockai.Engine
	Usage   *usage.Service
	Tracker interactions.Tracker
}

// Create stores a hand-written cover letter.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (CoverLetter, error) {
	cl := req.toLetter()
	now := util.Now()
	cl.ID = uuid.NewString()
	cl.UserID = userID
	cl.CreatedAt = now
	cl.UpdatedAt = now
	if err := s.Repo.Create(ctx, cl); err != nil {
		return CoverLetter{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, cl.ID, map[string]any{"tone": cl.Tone})
	return cl, nil
}

// Generate renders a letter from the template catalog and stores it as a draft.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (CoverLetter, error) {
	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}
	if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
		return CoverLetter{}, err
	}
	content, err := s.AI.CoverLetter(ctx, mockai.CoverLetterInput{
		JobTitle:      req.JobTitle,
		CompanyName:   req.CompanyName,
		ApplicantName: req.ApplicantName,
		Tone:          tone,
		Highlights:    req.Highlights,
	})
	if err != nil {
		s.Usage.Release(ctx, userID, 1)
		return CoverLetter{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Cover letter for " + req.JobTitle
		if req.CompanyName != "" {
			title += " at " + req.CompanyName
		}
	}
	now := util.Now()
	cl := CoverLetter{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Content:      content,
		Tone:         tone,
		CompanyName:  req.CompanyName,
		JobTitle:     req.JobTitle,
		JobPostingID: req.JobPostingID,
		ResumeID:     req.ResumeID,
		Status:       StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, cl); err != nil {
		s.Usage.Release(ctx, userID, 1)
		return CoverLetter{}, err
	}
	s.track(ctx, userID, interactions.ActionGenerate, cl.ID, map[string]any{"tone": tone, "jobTitle": req.JobTitle})
	return cl, nil
}

// Get returns one of userID's cover letters.
func (s *Service) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns a page of userID's cover letters.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]CoverLetter, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields and bumps updatedAt.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (CoverLetter, error) {
	cl, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return CoverLetter{}, err
	}
	req.apply(&cl)
	cl.UpdatedAt = util.NextTimestamp(cl.UpdatedAt)
	if err := s.Repo.Update(ctx, cl); err != nil {
		return CoverLetter{}, err
	}
	s.track(ctx, userID, interactions.ActionUpdate, cl.ID, nil)
	return cl, nil
}

// Delete removes one of userID's cover letters.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.CoverLetterWriter,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
