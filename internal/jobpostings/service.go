package jobpostings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/interactions"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/util"
)

const resourceType = "job_posting"

// Service contains business logic for job postings.
type Service struct {
	Repo    Repo
	Tracker interactions.Tracker
}

// Create stores a new posting, deriving the plain-text description.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (JobPosting, error) {
	p := req.toPosting()
	if err := checkSalary(p); err != nil {
		return JobPosting{}, err
	}
	now := util.Now()
	p.ID = uuid.NewString()
	p.UserID = userID
	p.DescriptionText = PlainText(p.Description)
	p.CreatedAt = now
	p.UpdatedAt = now
	stampPublished(&p, now)

	if err := s.Repo.Create(ctx, p); err != nil {
		return JobPosting{}, err
	}
	s.track(ctx, userID, interactions.ActionCreate, p.ID, map[string]any{"status": p.Status})
	return p, nil
}

// Get returns one of userID's postings.
func (s *Service) Get(ctx context.Context, userID, id string) (JobPosting, error) {
	return s.Repo.Get(ctx, userID, id)
}

// Exists reports whether userID owns the posting id.
func (s *Service) Exists(ctx context.Context, userID, id string) (bool, error) {
	_, err := s.Repo.Get(ctx, userID, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// List returns a page of userID's postings.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, p paging.Page) ([]JobPosting, error) {
	return s.Repo.List(ctx, userID, f, p.Limit, p.Offset)
}

// Update applies the supplied fields. publishedAt is stamped the first time
// the posting becomes published and never cleared.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (JobPosting, error) {
	p, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return JobPosting{}, err
	}
	prevStatus := p.Status
	req.apply(&p)
	if err := checkSalary(p); err != nil {
		return JobPosting{}, err
	}
	if req.Description != nil {
		p.DescriptionText = PlainText(p.Description)
	}
	p.UpdatedAt = util.NextTimestamp(p.UpdatedAt)
	stampPublished(&p, p.UpdatedAt)

	if err := s.Repo.Update(ctx, p); err != nil {
		return JobPosting{}, err
	}
	meta := map[string]any{"status": p.Status}
	if prevStatus != p.Status {
		meta["previousStatus"] = prevStatus
	}
	s.track(ctx, userID, interactions.ActionUpdate, p.ID, meta)
	return p, nil
}

// Delete removes one of userID's postings.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.track(ctx, userID, interactions.ActionDelete, id, nil)
	return nil
}

func stampPublished(p *JobPosting, at time.Time) {
	if p.Status == StatusPublished && p.PublishedAt == nil {
		t := at
		p.PublishedAt = &t
	}
}

func (s *Service) track(ctx context.Context, userID, action, id string, meta map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Track(ctx, interactions.Entry{
		UserID:       userID,
		Agent:        agents.JobPostingManager,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   id,
		Metadata:     meta,
	})
}
